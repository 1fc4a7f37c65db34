package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	Roles     string
	CreatedAt string
	UpdatedAt string
}

// Unique constraint names on users.account.
const (
	UserAccountUsernameKey = "account_username_key"
	UserAccountEmailKey    = "account_email_key"
)

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:     "users.account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	Roles:     "roles",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.Password, t.Roles, t.CreatedAt, t.UpdatedAt,
	}
}
