package query

import "fmt"

// Place is one node of the name-only hierarchy tree served by the places
// endpoint.
type Place struct {
	Name     string   `json:"name"`
	Children []*Place `json:"children,omitempty"`
}

// PlaceTree assembles the full continent -> country -> state -> county
// tree from the hierarchy tables.
func (e *Engine) PlaceTree() ([]*Place, error) {
	continents, err := e.db.AllContinents()
	if err != nil {
		return nil, fmt.Errorf("loading continents: %w", err)
	}
	countries, err := e.db.AllCountries()
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}
	states, err := e.db.AllStates()
	if err != nil {
		return nil, fmt.Errorf("loading states: %w", err)
	}
	counties, err := e.db.AllCounties()
	if err != nil {
		return nil, fmt.Errorf("loading counties: %w", err)
	}

	stateNodes := make(map[int64]*Place, len(states))
	countryNodes := make(map[int64]*Place, len(countries))
	continentNodes := make(map[int64]*Place, len(continents))

	var tree []*Place
	for _, ct := range continents {
		node := &Place{Name: ct.Name}
		continentNodes[ct.ID] = node
		tree = append(tree, node)
	}
	for _, co := range countries {
		node := &Place{Name: co.Name}
		countryNodes[co.ID] = node
		if parent := continentNodes[co.ContinentID]; parent != nil {
			parent.Children = append(parent.Children, node)
		}
	}
	for _, s := range states {
		node := &Place{Name: s.Name}
		stateNodes[s.ID] = node
		if parent := countryNodes[s.CountryID]; parent != nil {
			parent.Children = append(parent.Children, node)
		}
	}
	for _, c := range counties {
		if parent := stateNodes[c.StateID]; parent != nil {
			parent.Children = append(parent.Children, &Place{Name: c.Name})
		}
	}

	return tree, nil
}
