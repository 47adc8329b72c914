package auth

import (
	"RevTrackSaas/internal/logger"
	"RevTrackSaas/internal/serviceiface"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Role gates which dashboard surfaces a session may reach.
type Role string

const (
	RoleFinance Role = "finance"
	RoleAdmin   Role = "admin"
	RoleClient  Role = "client"
	RoleNone    Role = "none"
)

func ParseRole(s string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleFinance:
		return RoleFinance
	case RoleAdmin:
		return RoleAdmin
	case RoleClient:
		return RoleClient
	}
	return RoleNone
}

// UserSession is the process-wide session record. Client-role sessions carry
// the customer identity that scopes every record query they make; finance and
// admin sessions see all customers.
type UserSession struct {
	SessionID     string    `json:"session_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	CustomerID    string    `json:"customer_id,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty"`
	LastLoginTime string    `json:"last_login_time"`
	ClientIP      string    `json:"client_ip"`
	ExpiresAt     time.Time `json:"expires_at"`
	IsLoggedIn    bool      `json:"is_logged_in"`
}

type AuthService struct {
	db             *sql.DB
	maxUsers       int
	sessionTimeout time.Duration
	users          map[string]*UserSession
	userPointers   map[string]*UserSession
	mu             sync.Mutex
	stopCh         chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers, sessionTimeoutMinutes int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 200
	}
	if sessionTimeoutMinutes <= 0 {
		sessionTimeoutMinutes = 8 * 60
	}
	return &AuthService{
		db:             db,
		maxUsers:       maxUsers,
		sessionTimeout: time.Duration(sessionTimeoutMinutes) * time.Minute,
		users:          make(map[string]*UserSession),
		userPointers:   make(map[string]*UserSession),
		stopCh:         make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

func (a *AuthService) Login(username, password, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, session := range a.users {
		if session.Email == username && session.IsLoggedIn {
			session.LastLoginTime = time.Now().Format(time.RFC3339)
			session.ClientIP = clientIP
			session.ExpiresAt = time.Now().Add(a.sessionTimeout)
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit(fmt.Sprintf("User %s re-logged in, returning existing session", username))
			}
			return session, nil
		}
	}

	if len(a.users) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var (
		userID, name, email, roleStr string
		customerID, customerName     sql.NullString
	)

	query := `
    SELECT
        u.id AS user_id,
        u.employee_name,
        u.email,
        u.role,
        c.customer_id,
        c.customer_name
    FROM users u
    LEFT JOIN customers c ON u.customer_id = c.customer_id
    WHERE u.email = $1 AND u.password = $2 AND u.status = 'active'
    `

	err := a.db.QueryRow(query, username, password).Scan(
		&userID, &name, &email, &roleStr, &customerID, &customerName,
	)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	role := ParseRole(roleStr)
	if role == RoleNone {
		return nil, errors.New("user has no dashboard role assigned")
	}
	if role == RoleClient && !customerID.Valid {
		return nil, errors.New("client user has no customer mapping")
	}

	session := &UserSession{
		SessionID:     uuid.New().String(),
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          role,
		CustomerID:    customerID.String,
		CustomerName:  customerName.String,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
		ExpiresAt:     time.Now().Add(a.sessionTimeout),
		IsLoggedIn:    true,
	}

	a.users[session.SessionID] = session
	a.userPointers[userID] = session

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit(fmt.Sprintf("User logged in: %s role=%s", username, role))
	}

	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, exists := a.users[sessionID]
	if !exists {
		return errors.New("session not found")
	}
	delete(a.users, sessionID)
	delete(a.userPointers, session.UserID)

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("User logged out: " + session.UserID)
	}

	return nil
}

var globalAuthService *AuthService

// SetGlobalAuthService sets the global AuthService instance
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := time.Now()
	sessions := make([]*UserSession, 0, len(a.users))
	for _, s := range a.users {
		if now.Before(s.ExpiresAt) {
			sessions = append(sessions, s)
		}
	}
	return sessions
}

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.mu.Lock()
			now := time.Now()
			for id, s := range a.users {
				if now.After(s.ExpiresAt) {
					delete(a.users, id)
					delete(a.userPointers, s.UserID)
					if logger.GlobalLogger != nil {
						logger.GlobalLogger.LogAudit("Session expired for user: " + s.UserID)
					}
				}
			}
			a.mu.Unlock()
		}
	}
}
