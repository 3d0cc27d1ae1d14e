package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Asset is an image payload handed to the image host.
type Asset struct {
	Name string
	Data []byte
}

// Hosted describes an uploaded asset.
type Hosted struct {
	URL      string
	PublicID string
}

// ImageHost stores images and returns their public URL.
type ImageHost interface {
	Store(ctx context.Context, asset Asset) (Hosted, error)
}

// CloudinaryConfig holds image host credentials.
type CloudinaryConfig struct {
	CloudName    string
	APIKey       string
	APISecret    string
	Folder       string
	UploadPrefix string
}

// CloudinaryHost uploads to Cloudinary with resource type "auto".
type CloudinaryHost struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryHost validates credentials and builds a host.
func NewCloudinaryHost(cfg CloudinaryConfig) (*CloudinaryHost, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, errors.New("cloudinary: cloud_name, api_key and api_secret are required")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	if prefix := strings.TrimSpace(cfg.UploadPrefix); prefix != "" {
		cld.Config.API.UploadPrefix = prefix
	}
	folder := strings.TrimSpace(cfg.Folder)
	if folder == "" {
		folder = "ecogenius"
	}
	return &CloudinaryHost{cld: cld, folder: folder}, nil
}

// Store uploads the asset bytes directly from memory.
func (h *CloudinaryHost) Store(ctx context.Context, asset Asset) (Hosted, error) {
	params := uploader.UploadParams{
		Folder:       h.folder,
		ResourceType: "auto",
		PublicID:     publicID(),
	}
	resp, err := h.cld.Upload.Upload(ctx, io.Reader(bytes.NewReader(asset.Data)), params)
	if err != nil {
		return Hosted{}, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp == nil {
		return Hosted{}, errors.New("cloudinary upload: empty response")
	}
	if resp.Error.Message != "" {
		return Hosted{}, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	if resp.SecureURL == "" {
		return Hosted{}, errors.New("cloudinary upload: response missing secure_url")
	}
	return Hosted{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

func publicID() string {
	return "item-" + uuid.NewString()
}
