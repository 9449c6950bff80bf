package directory

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	admin "google.golang.org/api/admin/directory/v1"

	"github.com/custodia-labs/gshell/internal/connectors/google"
	"github.com/custodia-labs/gshell/internal/core/domain"
)

// Photo is a decoded user photo.
type Photo struct {
	Data     []byte
	MimeType string
	Width    int64
	Height   int64
}

// GetUserPhoto fetches a user's photo and decodes its web-safe base64 data.
func (s *Service) GetUserPhoto(ctx context.Context, userKey string) (*Photo, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	key := s.email(userKey)
	resp, err := google.Call(ctx, s.limiter, apiName, "users.photos.get", key,
		s.api.Users.Photos.Get(key).Context(ctx).Do)
	if err != nil {
		return nil, err
	}

	data, err := decodeWebSafe(resp.PhotoData)
	if err != nil {
		return nil, fmt.Errorf("decode photo data: %w", err)
	}
	return &Photo{Data: data, MimeType: resp.MimeType, Width: resp.Width, Height: resp.Height}, nil
}

// UpdateUserPhoto uploads image bytes as the user's photo. An empty
// mimeType is detected from the data.
func (s *Service) UpdateUserPhoto(ctx context.Context, userKey string, data []byte, mimeType string) (*admin.UserPhoto, error) {
	if err := required("user", userKey); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: photo data is empty", domain.ErrInvalidInput)
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: photo must be an image, got %s", domain.ErrInvalidInput, mimeType)
	}

	key := s.email(userKey)
	body := &admin.UserPhoto{
		PhotoData: base64.URLEncoding.EncodeToString(data),
		MimeType:  mimeType,
	}
	return google.Call(ctx, s.limiter, apiName, "users.photos.update", key,
		s.api.Users.Photos.Update(key, body).Context(ctx).Do)
}

// DeleteUserPhoto removes a user's photo.
func (s *Service) DeleteUserPhoto(ctx context.Context, userKey string) error {
	if err := required("user", userKey); err != nil {
		return err
	}
	key := s.email(userKey)
	return google.Exec(ctx, s.limiter, apiName, "users.photos.delete", key,
		s.api.Users.Photos.Delete(key).Context(ctx).Do)
}

// decodeWebSafe decodes the Directory API's web-safe base64, which may pad
// with "=", "*" or "." characters.
func decodeWebSafe(s string) ([]byte, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "=*.")
	return base64.RawURLEncoding.DecodeString(s)
}
