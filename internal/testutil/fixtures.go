package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/florimart/florimart/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email     string
	password  string
	firstName string
	lastName  string
	role      domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:     fmt.Sprintf("user_%s@test.dev", uuid.New().String()[:8]),
		password:  "testpassword123",
		firstName: "Test",
		lastName:  "User",
		role:      domain.RoleBuyer,
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithName sets first and last name
func (b *UserBuilder) WithName(first, last string) *UserBuilder {
	b.firstName = first
	b.lastName = last
	return b
}

// AsSeller marks the user as a seller
func (b *UserBuilder) AsSeller() *UserBuilder {
	b.role = domain.RoleSeller
	return b
}

// AsAdmin marks the user as an admin
func (b *UserBuilder) AsAdmin() *UserBuilder {
	b.role = domain.RoleAdmin
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		DisplayName:  b.firstName + " " + b.lastName,
		Role:         b.role,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BuildAndAuthenticate creates the user directly and logs in via the API,
// returning the user and an access token usable in the X-Token header.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	user, password := b.Build(t, ts.DB.DB)

	resp := PostJSON(t, ts.APIURL("/auth/login"), "", map[string]string{
		"email":    user.Email,
		"password": password,
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with status %d", resp.StatusCode)
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}

	return user, auth.AccessToken
}

// FlowerBuilder creates catalog flowers with a builder pattern
type FlowerBuilder struct {
	name    string
	variety string
	price   float64
	seller  *domain.User
}

// NewFlowerBuilder creates a new FlowerBuilder with default values
func NewFlowerBuilder() *FlowerBuilder {
	return &FlowerBuilder{
		name:    fmt.Sprintf("flower_%s", uuid.New().String()[:8]),
		variety: "Rose",
		price:   2.50,
	}
}

// WithName sets the flower name
func (b *FlowerBuilder) WithName(name string) *FlowerBuilder {
	b.name = name
	return b
}

// WithPrice sets the flower price
func (b *FlowerBuilder) WithPrice(price float64) *FlowerBuilder {
	b.price = price
	return b
}

// WithSeller attributes the flower to a seller
func (b *FlowerBuilder) WithSeller(seller *domain.User) *FlowerBuilder {
	b.seller = seller
	return b
}

// Build creates the flower, and its seller attribution when one is set
func (b *FlowerBuilder) Build(t *testing.T, db *gorm.DB) *domain.Flower {
	t.Helper()

	flower := &domain.Flower{
		Name:    b.name,
		Variety: b.variety,
		Price:   b.price,
	}
	if err := db.Create(flower).Error; err != nil {
		t.Fatalf("failed to create flower: %v", err)
	}

	if b.seller != nil {
		link := &domain.SellerFlower{SellerID: b.seller.ID, FlowerID: flower.ID}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("failed to attach seller: %v", err)
		}
	}

	return flower
}

// PostJSON sends a JSON POST request, attaching the token when non-empty
func PostJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodPost, url, token, body)
}

// PutJSON sends a JSON PUT request, attaching the token when non-empty
func PutJSON(t *testing.T, url, token string, body interface{}) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodPut, url, token, body)
}

// Get sends a GET request, attaching the token when non-empty
func Get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodGet, url, token, nil)
}

// Delete sends a DELETE request, attaching the token when non-empty
func Delete(t *testing.T, url, token string) *http.Response {
	t.Helper()
	return doJSON(t, http.MethodDelete, url, token, nil)
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-Token", token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}
