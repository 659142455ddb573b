package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2/google"

	"github.com/guestlens/server/internal/models"
	"github.com/guestlens/server/internal/observability"
)

// PushService notifies gallery hosts about guest activity through Firebase
// Cloud Messaging, using the HTTP v1 API directly. Device tokens are
// registered per gallery and held in memory; hosts re-register on reconnect.
type PushService struct {
	projectID   string
	credentials []byte
	httpClient  *http.Client

	token       string
	tokenExpiry time.Time
	tokenMu     sync.Mutex

	tokens   map[string]map[string]string // galleryID -> deviceID -> fcm token
	tokensMu sync.RWMutex
}

// NewPushService creates a PushService from a service account credentials file
func NewPushService(credentialsPath string) (*PushService, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path is required")
	}

	credData, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(credData, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	svc := &PushService{
		projectID:   creds.ProjectID,
		credentials: credData,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		tokens:      make(map[string]map[string]string),
	}

	if _, err := svc.getAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to get initial access token: %w", err)
	}
	observability.Infof("push notifications initialized for project %s", creds.ProjectID)

	return svc, nil
}

// RegisterToken records a device's FCM token for a gallery
func (s *PushService) RegisterToken(galleryID, deviceID, fcmToken string) {
	if galleryID == "" || deviceID == "" || fcmToken == "" {
		return
	}
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	if s.tokens[galleryID] == nil {
		s.tokens[galleryID] = make(map[string]string)
	}
	s.tokens[galleryID][deviceID] = fcmToken
}

// UnregisterToken drops a device's FCM token
func (s *PushService) UnregisterToken(galleryID, deviceID string) {
	s.tokensMu.Lock()
	defer s.tokensMu.Unlock()
	if devices, ok := s.tokens[galleryID]; ok {
		delete(devices, deviceID)
		if len(devices) == 0 {
			delete(s.tokens, galleryID)
		}
	}
}

// NotifyMediaAdded pushes an upload notification to the gallery host's devices
func (s *PushService) NotifyMediaAdded(ctx context.Context, gallery *models.Gallery, item *models.MediaItem) {
	s.tokensMu.RLock()
	fcmToken, ok := s.tokens[gallery.ID][gallery.HostDeviceID]
	s.tokensMu.RUnlock()
	if !ok {
		return
	}

	title := gallery.Name
	body := fmt.Sprintf("%s added a photo", item.UploadedBy)
	switch item.Type {
	case models.MediaVideo:
		body = fmt.Sprintf("%s added a video", item.UploadedBy)
	case models.MediaNote:
		body = fmt.Sprintf("%s left a note", item.UploadedBy)
	}

	data := map[string]string{
		"type":      "media_added",
		"galleryId": gallery.ID,
		"mediaId":   item.ID,
	}

	if err := s.send(ctx, fcmToken, title, body, data); err != nil {
		observability.Warnf("push send failed for gallery %s: %v", gallery.ID, err)
	}
}

// getAccessToken returns a valid OAuth2 access token, refreshing if needed
func (s *PushService) getAccessToken(ctx context.Context) (string, error) {
	s.tokenMu.Lock()
	defer s.tokenMu.Unlock()

	// 5 minute refresh buffer
	if s.token != "" && time.Now().Add(5*time.Minute).Before(s.tokenExpiry) {
		return s.token, nil
	}

	scopes := []string{"https://www.googleapis.com/auth/firebase.messaging"}

	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		creds, err = google.CredentialsFromJSON(ctx, s.credentials, scopes...)
		if err != nil {
			return "", fmt.Errorf("failed to create credentials: %w", err)
		}
	}

	token, err := creds.TokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}

	s.token = token.AccessToken
	s.tokenExpiry = token.Expiry
	return s.token, nil
}

type fcmMessage struct {
	Message fcmMessageBody `json:"message"`
}

type fcmMessageBody struct {
	Token        string            `json:"token"`
	Data         map[string]string `json:"data,omitempty"`
	Notification *fcmNotification  `json:"notification,omitempty"`
	Android      *fcmAndroid       `json:"android,omitempty"`
	APNS         *fcmAPNS          `json:"apns,omitempty"`
}

type fcmNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type fcmAndroid struct {
	Priority     string                  `json:"priority,omitempty"`
	Notification *fcmAndroidNotification `json:"notification,omitempty"`
}

type fcmAndroidNotification struct {
	ChannelID string `json:"channel_id,omitempty"`
}

type fcmAPNS struct {
	Headers map[string]string `json:"headers,omitempty"`
	Payload *fcmAPNSPayload   `json:"payload,omitempty"`
}

type fcmAPNSPayload struct {
	Aps *fcmAps `json:"aps,omitempty"`
}

type fcmAps struct {
	Alert *fcmApsAlert `json:"alert,omitempty"`
	Sound string       `json:"sound,omitempty"`
}

type fcmApsAlert struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *PushService) send(ctx context.Context, fcmToken, title, body string, data map[string]string) error {
	token, err := s.getAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to get access token: %w", err)
	}

	message := fcmMessage{
		Message: fcmMessageBody{
			Token: fcmToken,
			Data:  data,
			Notification: &fcmNotification{
				Title: title,
				Body:  body,
			},
			Android: &fcmAndroid{
				Priority: "normal",
				Notification: &fcmAndroidNotification{
					ChannelID: "gallery_activity",
				},
			},
			APNS: &fcmAPNS{
				Headers: map[string]string{
					"apns-priority":  "5",
					"apns-push-type": "alert",
				},
				Payload: &fcmAPNSPayload{
					Aps: &fcmAps{
						Alert: &fcmApsAlert{Title: title, Body: body},
						Sound: "default",
					},
				},
			},
		},
	}

	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("https://fcm.googleapis.com/v1/projects/%s/messages:send", s.projectID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("FCM API error: %s", string(respBody))
	}
	return nil
}
