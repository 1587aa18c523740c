package v1

import "time"

// ---- chatbot ----

// ChatbotRequest sends one user message to the chatbot.
type ChatbotRequest struct {
	Message string `json:"message"`
}

// ChatbotReply is the chatbot's answer.
type ChatbotReply struct {
	Response string `json:"response"`
}

type ChatbotResponse = Envelope[ChatbotReply]

// ---- motivation ----

// MotivationCategory groups motivations.
type MotivationCategory struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MotivationCategoryRequest creates or renames a category.
type MotivationCategoryRequest struct {
	Name string `json:"name"`
}

// Motivation is a single motivational quote.
type Motivation struct {
	ID         string              `json:"id"`
	Author     string              `json:"author"`
	Content    string              `json:"content"`
	CategoryID string              `json:"category_id"`
	Category   *MotivationCategory `json:"category,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

// MotivationRequest creates or updates a motivation.
type MotivationRequest struct {
	Author     string `json:"author"`
	Content    string `json:"content"`
	CategoryID string `json:"category_id"`
}

type (
	MotivationResponse             = Envelope[Motivation]
	MotivationListResponse         = Envelope[[]Motivation]
	MotivationCategoryResponse     = Envelope[MotivationCategory]
	MotivationCategoryListResponse = Envelope[[]MotivationCategory]

	// MotivationDeleteResponse carries no data.
	MotivationDeleteResponse = Envelope[*struct{}]
)

// ---- region ----

// Province is a first-level administrative region.
type Province struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// City belongs to a Province.
type City struct {
	ID         string `json:"id"`
	ProvinceID string `json:"province_id"`
	Name       string `json:"name"`
}

type (
	ProvinceListResponse = Envelope[[]Province]
	CityListResponse     = Envelope[[]City]
)

// ---- role ----

// Role is an account role such as "admin" or "user".
type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoleListResponse = Envelope[[]Role]

// ---- token ----

// AdminLoginRequest is the admin sign-in form.
type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenData carries a freshly issued credential token.
type TokenData struct {
	Token string `json:"token"`
}

type TokenResponse = Envelope[TokenData]

// ---- registration ----

// RegisterRequest creates a user account.
type RegisterRequest struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	RoleID     string `json:"role_id,omitempty"`
	ProvinceID string `json:"province_id,omitempty"`
	CityID     string `json:"city_id,omitempty"`
}

// RegisteredUser is the account returned after registration.
type RegisteredUser struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	RoleID     string    `json:"role_id,omitempty"`
	ProvinceID string    `json:"province_id,omitempty"`
	CityID     string    `json:"city_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RegisterResponse is the one endpoint that omits the timestamp.
type RegisterResponse struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    RegisteredUser `json:"data"`
}
