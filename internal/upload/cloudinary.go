package upload

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go"
	"github.com/cloudinary/cloudinary-go/api/uploader"
)

const CloudinaryFolder = "exactfit/tickets"

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld, folder: CloudinaryFolder}, nil
}

func (s *CloudinaryStore) Put(ctx context.Context, key, _ string, body []byte) (string, error) {
	publicID := strings.TrimSuffix(path.Base(key), path.Ext(key))

	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(body), uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %s: %w", key, err)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload %s: no url returned", key)
	}
	return res.SecureURL, nil
}
