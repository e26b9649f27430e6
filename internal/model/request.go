package model

// AddCartRequest is the payload for adding a food to the cart.
type AddCartRequest struct {
	FoodID   int64 `json:"foodId"`
	Quantity int   `json:"quantity"`
}

// CheckoutRequest is the payload for placing an order from the cart.
// SelectedFoodIDs is the session selection: only these lines are priced
// into the order.
type CheckoutRequest struct {
	SelectedFoodIDs []int64          `json:"selectedFoodIds"`
	Address         string           `json:"address"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod"`
	BankPaymentInfo *BankPaymentInfo `json:"bankPaymentInfo,omitempty"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// LoginRequest is the payload for signing in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed token and the account it belongs to.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest is the payload for editing the profile screen fields.
type UpdateProfileRequest struct {
	FullName  string `json:"fullName"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birthDate"`
	Gender    string `json:"gender"`
}

// ReviewRequest is the payload for posting a food review.
type ReviewRequest struct {
	Rating   float64 `json:"rating"`
	Comment  string  `json:"comment"`
	ImageURL string  `json:"imageUrl,omitempty"`
}

// ChatRequest is the payload for the chat assistant.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}
