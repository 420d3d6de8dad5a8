package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile mirrors the row the onboarding wizard and profile screens write.
// The id is the auth provider's user id, not generated here.
type Profile struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username              string    `json:"username"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	PartnerName           string    `json:"partnerName"`
	Age                   int       `json:"age"`
	Bio                   string    `json:"bio"`
	ProfilePictureURL     string    `json:"profilePictureUrl"`
	PhoneNumber           string    `json:"phoneNumber"`
	DeviceToken           string    `json:"deviceToken"`
	EmailNotifications    bool      `json:"emailNotifications"`
	TextNotifications     bool      `json:"textNotifications"`
	PushNotifications     bool      `json:"pushNotifications"`
	RelationshipStatus    string    `json:"relationshipStatus"`
	RelationshipStartDate string    `json:"relationshipStartDate"`
	AnniversaryDate       string    `json:"anniversaryDate"`
	PartnerBirthdate      string    `json:"partnerBirthdate"`
	LoveLanguages         datatypes.JSON `json:"loveLanguages"`
	RelationshipGoals     datatypes.JSON `json:"relationshipGoals"`
	OnboardingCompleted   bool      `json:"onboardingCompleted"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (Profile) TableName() string { return "profiles" }

// Checkin is a daily mood entry.
type Checkin struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;index" json:"userId"`
	MoodScore int            `json:"moodScore"`
	Notes     string         `json:"notes"`
	Tags      datatypes.JSON `json:"tags"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (Checkin) TableName() string { return "checkins" }

// QuizResult stores one submitted self-assessment. Kind distinguishes the
// relationship-health and stay-or-leave questionnaires; the row shape is
// identical for both.
type QuizResult struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index" json:"userId"`
	Kind           string         `json:"kind"`
	Score          float64        `json:"score"`
	Assessment     string         `json:"assessment"`
	Recommendation string         `json:"recommendation"`
	Answers        datatypes.JSON `json:"answers"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (QuizResult) TableName() string { return "quizzes" }

// Subscription is the status flag written after platform receipt
// verification. One row per user.
type Subscription struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"userId"`
	ProductID string    `json:"productId"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Subscription) TableName() string { return "subscriptions" }

// ChatSession is the persisted session row. Messages live in chat_messages
// and are deleted with their session.
type ChatSession struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// ChatMessage is one persisted turn.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;index" json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
