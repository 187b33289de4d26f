// Package s3 stores saves as JSON objects in an S3-compatible bucket (AWS S3
// or MinIO). Each account owns one object under the saves/ prefix; header and
// summary fields travel as object metadata so listing skips the payload.
package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/louisbranch/krishicash/internal/services/game/storage"
)

const (
	keyPrefix   = "saves/"
	keySuffix   = ".json"
	contentType = "application/json"
)

const (
	metaSaveID         = "save-id"
	metaSchemaVersion  = "schema-version"
	metaSavedAt        = "saved-at"
	metaDifficulty     = "difficulty"
	metaGoalName       = "goal-name"
	metaMonth          = "month"
	metaSavings        = "savings"
	metaStabilityScore = "stability-score"
)

// Config holds construction parameters. Credentials fall back to the
// default AWS chain when AccessKeyID is empty.
type Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// Store is an S3-backed RecordStore.
type Store struct {
	client *s3.Client
	bucket string
}

var (
	_ storage.RecordStore = (*Store)(nil)
	_ storage.Lister      = (*Store)(nil)
)

// New creates a store for cfg.Bucket.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken)))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newWithClient(s3.NewFromConfig(awsCfg, clientOptions(cfg, nil)), cfg.Bucket), nil
}

func newWithClient(client *s3.Client, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

// clientOptions applies endpoint overrides. Checksums are only computed when
// an operation requires them, which keeps MinIO and older gateways happy.
func clientOptions(cfg Config, httpClient *http.Client) func(*s3.Options) {
	return func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if httpClient != nil {
			o.HTTPClient = httpClient
		}
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}
}

func objectKey(accountID string) string {
	return keyPrefix + accountID + keySuffix
}

func accountFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || !strings.HasSuffix(key, keySuffix) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), keySuffix)
	return id, id != ""
}

// Get downloads the object for accountID.
func (s *Store) Get(ctx context.Context, accountID string) (storage.Record, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(accountID)),
	})
	if isNotFound(err) {
		return storage.Record{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.Record{}, fmt.Errorf("get save %s: %w", accountID, err)
	}
	defer func() { _ = out.Body.Close() }()

	payload, err := io.ReadAll(out.Body)
	if err != nil {
		return storage.Record{}, fmt.Errorf("read save %s: %w", accountID, err)
	}
	rec := recordFromMetadata(accountID, out.Metadata, out.LastModified)
	rec.Payload = payload
	return rec, nil
}

// Put uploads rec, replacing any previous object.
func (s *Store) Put(ctx context.Context, rec storage.Record) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey(rec.AccountID)),
		Body:          bytes.NewReader(rec.Payload),
		ContentLength: aws.Int64(int64(len(rec.Payload))),
		ContentType:   aws.String(contentType),
		Metadata:      metadataFromRecord(rec),
	})
	if err != nil {
		return fmt.Errorf("put save %s: %w", rec.AccountID, err)
	}
	return nil
}

// Delete removes the object for accountID. S3 treats a missing key as done.
func (s *Store) Delete(ctx context.Context, accountID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(accountID)),
	})
	if err != nil && !isNotFound(err) {
		return fmt.Errorf("delete save %s: %w", accountID, err)
	}
	return nil
}

// List pages through the saves/ prefix and reads each object's metadata.
func (s *Store) List(ctx context.Context) ([]storage.Record, error) {
	var (
		out   []storage.Record
		token *string
	)
	for {
		page, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(keyPrefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list saves: %w", err)
		}
		for _, obj := range page.Contents {
			accountID, ok := accountFromKey(aws.ToString(obj.Key))
			if !ok {
				continue
			}
			head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    obj.Key,
			})
			if isNotFound(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("head save %s: %w", accountID, err)
			}
			lastModified := head.LastModified
			if lastModified == nil {
				lastModified = obj.LastModified
			}
			out = append(out, recordFromMetadata(accountID, head.Metadata, lastModified))
		}
		if aws.ToBool(page.IsTruncated) && page.NextContinuationToken != nil {
			token = page.NextContinuationToken
			continue
		}
		break
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func metadataFromRecord(rec storage.Record) map[string]string {
	return map[string]string{
		metaSaveID:         rec.SaveID,
		metaSchemaVersion:  strconv.Itoa(rec.SchemaVersion),
		metaSavedAt:        rec.SavedAt.UTC().Format(time.RFC3339Nano),
		metaDifficulty:     rec.Summary.Difficulty,
		metaGoalName:       rec.Summary.GoalName,
		metaMonth:          strconv.Itoa(rec.Summary.Month),
		metaSavings:        strconv.FormatInt(rec.Summary.Savings, 10),
		metaStabilityScore: strconv.Itoa(rec.Summary.StabilityScore),
	}
}

// recordFromMetadata rebuilds header fields. Unparseable values are left zero;
// the payload, not the metadata, is authoritative.
func recordFromMetadata(accountID string, md map[string]string, lastModified *time.Time) storage.Record {
	rec := storage.Record{AccountID: accountID}
	rec.SaveID = metaValue(md, metaSaveID)
	rec.SchemaVersion, _ = strconv.Atoi(metaValue(md, metaSchemaVersion))
	rec.Summary.Difficulty = metaValue(md, metaDifficulty)
	rec.Summary.GoalName = metaValue(md, metaGoalName)
	rec.Summary.Month, _ = strconv.Atoi(metaValue(md, metaMonth))
	rec.Summary.Savings, _ = strconv.ParseInt(metaValue(md, metaSavings), 10, 64)
	rec.Summary.StabilityScore, _ = strconv.Atoi(metaValue(md, metaStabilityScore))
	if savedAt, err := time.Parse(time.RFC3339Nano, metaValue(md, metaSavedAt)); err == nil {
		rec.SavedAt = savedAt.UTC()
	} else if lastModified != nil {
		rec.SavedAt = lastModified.UTC()
	}
	return rec
}

// metaValue looks key up case-insensitively; gateways differ in how they
// case user metadata names.
func metaValue(md map[string]string, key string) string {
	if v, ok := md[key]; ok {
		return v
	}
	for k, v := range md {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}
	var respErr *awshttp.ResponseError
	return errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound
}
