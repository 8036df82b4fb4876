package domain

type Organization struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Description string `json:"description"`
	Website     string `json:"website"`
	IsActive    bool   `json:"is_active"`
	CreatedOn   string `json:"created_on"`
}
