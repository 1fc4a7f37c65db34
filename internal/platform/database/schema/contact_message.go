package schema

// ContactMessageTable represents the 'contact.message' table
type ContactMessageTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt string
}

// ContactMessage is the schema definition for contact.message
var ContactMessage = ContactMessageTable{
	Table:     "contact.message",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Message:   "message",
	CreatedAt: "createdat",
}
