package schema

// PortfolioItemTable represents the 'portfolio.item' table
type PortfolioItemTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	ImageURL    string
	ProjectURL  string
	CreatedAt   string
}

// PortfolioItem is the schema definition for portfolio.item
var PortfolioItem = PortfolioItemTable{
	Table:       "portfolio.item",
	ID:          "id",
	Title:       "title",
	Description: "description",
	ImageURL:    "imageurl",
	ProjectURL:  "projecturl",
	CreatedAt:   "createdat",
}
