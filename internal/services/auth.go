package services

import (
	"errors"
	"time"

	"github.com/wpsadi/AssessKit-sub000/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService issues and verifies the two token kinds: organizer tokens
// (username/password) and participant tokens (event code + email). The core
// never sees a raw credential; middleware resolves tokens into explicit
// (participantId, eventId) or organizerId arguments.
type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{db: db, jwtSecret: []byte(jwtSecret)}
}

func (s *AuthService) Register(username, password string) (string, error) {
	var existing models.Organizer
	if err := s.db.Where("username = ?", username).First(&existing).Error; err == nil {
		return "", errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	organizer := models.Organizer{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.db.Create(&organizer).Error; err != nil {
		return "", err
	}

	return s.generateOrganizerToken(organizer.ID)
}

func (s *AuthService) Login(username, password string) (string, error) {
	var organizer models.Organizer
	if err := s.db.Where("username = ?", username).First(&organizer).Error; err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(organizer.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	return s.generateOrganizerToken(organizer.ID)
}

// ParticipantLogin exchanges an event code and a registered email for a
// bearer token carrying the (participant, event) identity pair.
func (s *AuthService) ParticipantLogin(eventCode, email string) (string, error) {
	var event models.Event
	if err := s.db.Where("code = ?", eventCode).First(&event).Error; err != nil {
		return "", ErrEventNotFound
	}

	var participant models.Participant
	if err := s.db.Where("event_id = ? AND email = ?", event.ID, email).First(&participant).Error; err != nil {
		return "", ErrParticipantNotFound
	}
	if !participant.Active {
		return "", ErrParticipantInactive
	}

	claims := jwt.MapClaims{
		"participant_id": participant.ID,
		"event_id":       event.ID,
		"exp":            time.Now().Add(24 * time.Hour).Unix(),
		"iat":            time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) generateOrganizerToken(organizerID uint) (string, error) {
	claims := jwt.MapClaims{
		"organizer_id": organizerID,
		"exp":          time.Now().Add(24 * time.Hour).Unix(),
		"iat":          time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) ValidateOrganizerToken(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, err
	}
	id, ok := claims["organizer_id"].(float64)
	if !ok {
		return 0, errors.New("invalid organizer_id in token")
	}
	return uint(id), nil
}

func (s *AuthService) ValidateParticipantToken(tokenString string) (participantID, eventID uint, err error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, 0, err
	}
	pid, ok := claims["participant_id"].(float64)
	if !ok {
		return 0, 0, errors.New("invalid participant_id in token")
	}
	eid, ok := claims["event_id"].(float64)
	if !ok {
		return 0, 0, errors.New("invalid event_id in token")
	}
	return uint(pid), uint(eid), nil
}

func (s *AuthService) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}
