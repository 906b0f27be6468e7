package testutil

import (
	"os"
	"testing"
	"time"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
)

// TestHelper provides utility functions for tests
type TestHelper struct {
	t *testing.T
}

func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// CreateTestUser creates a test user with default values
func (h *TestHelper) CreateTestUser(id uint, username, email string) *models.User {
	if id == 0 {
		id = 1
	}
	if username == "" {
		username = "testuser"
	}
	if email == "" {
		email = "test@example.com"
	}

	return &models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		FullName:  "Test User",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// CreateTestEvent creates a published test event with default values
func (h *TestHelper) CreateTestEvent(id uint, creatorID uint, title string) *models.Event {
	if id == 0 {
		id = 1
	}
	if creatorID == 0 {
		creatorID = 1
	}
	if title == "" {
		title = "Test Event"
	}

	return &models.Event{
		ID:          id,
		Title:       title,
		Description: "Test event description",
		StartsAt:    time.Now().Add(24 * time.Hour),
		EndsAt:      time.Now().Add(26 * time.Hour),
		IsDraft:     false,
		CreatorID:   creatorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// CreateTestJob creates a published test job with default values
func (h *TestHelper) CreateTestJob(id uint, authorID uint, title string) *models.Job {
	if id == 0 {
		id = 1
	}
	if authorID == 0 {
		authorID = 1
	}
	if title == "" {
		title = "Test Job"
	}

	budget := int64(50000)
	return &models.Job{
		ID:          id,
		Title:       title,
		Description: "Test job description",
		Budget:      &budget,
		Currency:    "USD",
		IsDraft:     false,
		AuthorID:    authorID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// SetupTestEnv sets up required environment variables for testing
func (h *TestHelper) SetupTestEnv() {
	os.Setenv("JWT_SECRET", "test-secret-key-for-testing-only")
	os.Setenv("DATABASE_URL", "")
	os.Setenv("MAX_BATCH_IDS", "100")
}

// TeardownTestEnv cleans up environment variables after testing
func (h *TestHelper) TeardownTestEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("MAX_BATCH_IDS")
}

// AssertError checks if an error occurred when it should (or shouldn't)
func (h *TestHelper) AssertError(err error, shouldErr bool, testName string) {
	if (err != nil) != shouldErr {
		if shouldErr {
			h.t.Errorf("%s: expected error but got nil", testName)
		} else {
			h.t.Errorf("%s: unexpected error: %v", testName, err)
		}
	}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(got, want interface{}, testName string) {
	if got != want {
		h.t.Errorf("%s: got %v, want %v", testName, got, want)
	}
}

// AssertNotNil checks if a value is not nil
func (h *TestHelper) AssertNotNil(value interface{}, testName string) {
	if value == nil {
		h.t.Errorf("%s: expected non-nil value", testName)
	}
}

// AssertNil checks if a value is nil
func (h *TestHelper) AssertNil(value interface{}, testName string) {
	if value != nil {
		h.t.Errorf("%s: expected nil, got %v", testName, value)
	}
}
