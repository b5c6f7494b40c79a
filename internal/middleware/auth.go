package middleware

import (
	"net/http"
	"strings"

	"github.com/wpsadi/AssessKit-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// JWTAuth guards organizer endpoints and stores organizer_id in the context.
func JWTAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		organizerID, err := authService.ValidateOrganizerToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("organizer_id", organizerID)
		c.Next()
	}
}

// ParticipantAuth resolves a participant bearer token into the explicit
// (participant_id, event_id) pair the play endpoints take as input.
func ParticipantAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		participantID, eventID, err := authService.ValidateParticipantToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("participant_id", participantID)
		c.Set("event_id", eventID)
		c.Next()
	}
}

// FlexAuth accepts either token kind; leaderboards are readable by both
// organizers and participants.
func FlexAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			return
		}

		if organizerID, err := authService.ValidateOrganizerToken(token); err == nil {
			c.Set("organizer_id", organizerID)
			c.Next()
			return
		}

		participantID, eventID, err := authService.ValidateParticipantToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("participant_id", participantID)
		c.Set("event_id", eventID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		return "", false
	}
	return parts[1], true
}
