package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"datenight_server/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveService writes a JSON snapshot of each processing run to S3 so
// operators keep a record beyond the replaceable Matches table
type ArchiveService struct {
	Client *s3.Client
	Bucket string
}

// NewArchiveServiceFromEnv returns nil when no bucket is configured;
// archiving is optional
func NewArchiveServiceFromEnv(cfg aws.Config) *ArchiveService {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil
	}
	return &ArchiveService{Client: s3.NewFromConfig(cfg), Bucket: bucket}
}

type matchResultsArchive struct {
	EventID     string               `json:"event_id"`
	ProcessedAt string               `json:"processed_at"`
	Summary     *models.MatchSummary `json:"summary"`
	Matches     []models.Match       `json:"matches"`
}

// ArchiveMatchResults stores the run under match-results/{eventId}.json.
// Reruns overwrite the object, matching the replace-all persistence of the
// Matches table.
func (as *ArchiveService) ArchiveMatchResults(ctx context.Context, eventID string, summary *models.MatchSummary, matches []models.Match) error {
	payload, err := json.Marshal(matchResultsArchive{
		EventID:     eventID,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
		Summary:     summary,
		Matches:     matches,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal match results archive: %w", err)
	}

	key := "match-results/" + eventID + ".json"
	_, err = as.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(as.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to archive match results for event '%s': %w", eventID, err)
	}

	log.Printf("🗄️ Archived match results: s3://%s/%s", as.Bucket, key)
	return nil
}
