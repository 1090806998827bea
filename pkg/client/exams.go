package client

import (
	"context"
	"fmt"
	"net/http"

	"examdesk/pkg/model"
)

// ExamsClient talks to the exams service over HTTP. The registry service
// uses it for dashboard aggregation instead of reaching into the exams
// collections directly.
type ExamsClient struct {
	http *HttpClient
}

func NewExamsClient(baseURL string) *ExamsClient {
	return &ExamsClient{
		http: NewHttpClient(baseURL),
	}
}

func (c *ExamsClient) Stats(ctx context.Context) (*model.ExamStats, error) {
	resp, err := c.http.GET(ctx, "/api/v1/exams/stats")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exams service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var envelope struct {
		Data model.ExamStats `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode exam stats: %w", err)
	}
	return &envelope.Data, nil
}

func (c *ExamsClient) SearchByDate(ctx context.Context, examDate string) ([]*model.Exam, error) {
	resp, err := c.http.GET(ctx, "/api/v1/exams/search?exam_date="+examDate)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exams service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var envelope struct {
		Data []*model.Exam `json:"data"`
	}
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode exams: %w", err)
	}
	return envelope.Data, nil
}
