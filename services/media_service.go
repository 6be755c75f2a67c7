package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/soufdev/fraudline/config"
)

// MediaService interface
type MediaService interface {
	UploadEvidenceImage(file multipart.File, filename string) (string, error)
	UploadProfileImage(userID uint, file multipart.File, filename string) (string, error)
}

type mediaService struct {
	Config *config.Config
	client *http.Client
}

// NewMediaService instantiate a mediaService
func NewMediaService(conf *config.Config) MediaService {
	return &mediaService{
		Config: conf,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// UploadEvidenceImage pushes the screenshot to the image host using an
// unsigned upload preset and returns the hosted URL. Callers treat a failure
// as non-fatal: a report stands without its evidence image.
func (m *mediaService) UploadEvidenceImage(file multipart.File, filename string) (string, error) {
	defer file.Close()

	if m.Config.ImageHostUploadUrl == "" || m.Config.ImageHostUploadPreset == "" {
		return "", fmt.Errorf("image host not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read upload file: %v", err)
	}
	if err := writer.WriteField("upload_preset", m.Config.ImageHostUploadPreset); err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, m.Config.ImageHostUploadUrl, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image host unreachable: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	var uploaded struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode image host response: %v", err)
	}
	if uploaded.SecureURL != "" {
		return uploaded.SecureURL, nil
	}
	return uploaded.URL, nil
}

// UploadProfileImage resizes the avatar to a thumbnail and stores it on S3.
func (m *mediaService) UploadProfileImage(userID uint, file multipart.File, filename string) (string, error) {
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("error decoding image: %v", err)
	}

	thumbnail := resize.Resize(200, 0, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumbnail, imaging.JPEG); err != nil {
		return "", fmt.Errorf("error encoding thumbnail: %v", err)
	}

	client, err := m.createS3Client()
	if err != nil {
		return "", err
	}

	sanitized := strings.ReplaceAll(filename, " ", "_")
	key := fmt.Sprintf("profiles/%d_%s_%s.jpg", userID, uuid.New().String(), strings.TrimSuffix(sanitized, ".jpg"))

	_, err = client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(m.Config.AwsBucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
		ACL:    types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		log.Printf("error uploading profile image to S3: %v", err)
		return "", fmt.Errorf("failed to upload profile image: %v", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.Config.AwsBucket, m.Config.AwsRegion, key), nil
}

func (m *mediaService) createS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(m.Config.AwsRegion),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			m.Config.AwsAccessKeyID,
			m.Config.AwsSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config, %v", err)
	}

	return s3.NewFromConfig(cfg), nil
}
