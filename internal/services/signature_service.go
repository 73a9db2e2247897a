package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"

	"puzzle-landing-api/internal/config"
	"puzzle-landing-api/internal/models"

	"github.com/sirupsen/logrus"
)

// UploadSource is the fixed "source" parameter the upload widget signs with
const UploadSource = "uw"

// signatureService implements the SignatureService interface
type signatureService struct {
	config config.CloudinaryConfig
	now    func() time.Time
	logger *logrus.Logger
}

// NewSignatureService creates a new signature service instance
func NewSignatureService(cfg config.CloudinaryConfig, logger *logrus.Logger) SignatureService {
	return newSignatureService(cfg, time.Now, logger)
}

func newSignatureService(cfg config.CloudinaryConfig, now func() time.Time, logger *logrus.Logger) *signatureService {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.DefaultFolder == "" {
		cfg.DefaultFolder = config.DefaultUploadFolder
	}
	return &signatureService{
		config: cfg,
		now:    now,
		logger: logger,
	}
}

// SignUpload signs timestamp, folder and source with the API secret
func (s *signatureService) SignUpload(ctx context.Context, req *models.SignRequest) (*models.SignResponse, error) {
	if !s.config.HasCredentials() {
		s.logger.Error("Cloudinary credentials are not configured")
		return nil, &ConfigError{Message: MsgMissingCloudinary}
	}

	folder := s.config.DefaultFolder
	if req != nil && req.Folder != "" {
		folder = req.Folder
	}

	timestamp := s.now().Unix()
	signature := SignParams(map[string]string{
		"timestamp": strconv.FormatInt(timestamp, 10),
		"folder":    folder,
		"source":    UploadSource,
	}, s.config.APISecret)

	s.logger.WithFields(logrus.Fields{
		"folder":    folder,
		"timestamp": timestamp,
	}).Debug("Upload signature issued")

	return &models.SignResponse{
		CloudName: s.config.CloudName,
		APIKey:    s.config.APIKey,
		Timestamp: timestamp,
		Folder:    folder,
		Signature: signature,
	}, nil
}

// SignParams joins params as key=value pairs sorted by key, separated by
// "&", appends secret with no delimiter and returns the SHA-1 hex digest.
// The media host recomputes the same string to verify uploads.
func SignParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}
