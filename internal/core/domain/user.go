package domain

// DefaultVotes is assigned to every user on registration. A client-supplied
// votes value is never trusted.
const DefaultVotes = 10

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Gender   string `json:"gender"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Votes    int    `json:"votes"`
}

// CreateUserRequest is the register payload. Phone uses the custom cnphone
// rule (1 followed by 10 digits) registered in the web layer.
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=8"`
	Gender   string `json:"gender" binding:"required"`
	Age      int    `json:"age" binding:"required,gte=18,lte=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,cnphone"`
	Votes    int    `json:"votes" binding:"omitempty,gte=0"`
}
