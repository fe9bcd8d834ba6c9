package domain

// SeedDepartments returns the default department directory.
func SeedDepartments() []Department {
	return []Department{
		{ID: 1, Name: "Lending"},
		{ID: 2, Name: "Funding"},
		{ID: 3, Name: "Operations"},
		{ID: 4, Name: "Engineering"},
	}
}

// SeedLocations returns the default office locations.
func SeedLocations() []Location {
	return []Location{
		{ID: 1, Name: "Jakarta"},
		{ID: 2, Name: "Depok"},
		{ID: 3, Name: "Surabaya"},
	}
}
