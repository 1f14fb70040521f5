package extraction

import (
	"Receipt-Ledger-Backend/domain"
	"Receipt-Ledger-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var ErrExtractionFailed = errors.New("receipt extraction failed")

type (
	// ExtractionService calls the external AI OCR collaborator. Its output is
	// untrusted: callers store the raw payload and candidate fields without
	// validating either.
	ExtractionService interface {
		ExtractReceiptData(ctx context.Context, imageFile *multipart.FileHeader) (json.RawMessage, *domain.ExtractedFields, error)
	}

	geminiService struct {
		httpClient *http.Client
	}
)

func NewGeminiService() ExtractionService {
	return &geminiService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

const extractionPrompt = "Analyze this receipt image and respond ONLY with a valid JSON object containing exactly these fields: " +
	"'vendor_name' (string), 'total_amount' (number), 'currency_code' (3-letter ISO code string), " +
	"'transaction_date' (string in YYYY-MM-DD format), 'receipt_number' (string), and 'payer_name' (string). " +
	"Use null for any field not present on the receipt. Do not include any explanations, markdown formatting, or extra text."

func (s *geminiService) ExtractReceiptData(ctx context.Context, imageFile *multipart.FileHeader) (json.RawMessage, *domain.ExtractedFields, error) {
	file, err := imageFile.Open()
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	fileData, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, err
	}

	base64Image := base64.StdEncoding.EncodeToString(fileData)

	geminiAPIKey := utils.GetConfig("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	geminiModel := utils.GetConfig("GEMINI_MODEL")
	if geminiModel == "" {
		return nil, nil, fmt.Errorf("GEMINI_MODEL environment variable not set")
	}

	mimeType := imageFile.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"

		ext := strings.ToLower(filepath.Ext(imageFile.Filename))
		switch ext {
		case ".png":
			mimeType = "image/png"
		case ".jpg", ".jpeg":
			mimeType = "image/jpeg"
		case ".gif":
			mimeType = "image/gif"
		case ".webp":
			mimeType = "image/webp"
		}
	}

	geminiURL := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s", geminiModel, geminiAPIKey)

	requestBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{
						"text": extractionPrompt,
					},
					{
						"inline_data": map[string]interface{}{
							"mime_type": mimeType,
							"data":      base64Image,
						},
					},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature": 0.1,
			"topP":        0.8,
			"topK":        40,
		},
	}

	requestJSON, err := json.Marshal(requestBody)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", geminiURL, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, nil, fmt.Errorf("gemini API error: %s - %s", resp.Status, string(bodyBytes))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		return nil, nil, err
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return nil, nil, ErrExtractionFailed
	}

	responseText := cleanResponseText(geminiResp.Candidates[0].Content.Parts[0].Text)

	var fields domain.ExtractedFields
	if err := json.Unmarshal([]byte(responseText), &fields); err != nil {
		return json.RawMessage(responseText), nil, fmt.Errorf("failed to parse extraction response: %v", err)
	}

	fields.CurrencyCode = strings.ToUpper(strings.TrimSpace(fields.CurrencyCode))

	return json.RawMessage(responseText), &fields, nil
}

// cleanResponseText strips markdown fences and surrounding prose the model
// sometimes wraps around the JSON object.
func cleanResponseText(text string) string {
	jsonPattern := regexp.MustCompile(`(?s)\{.*\}`)
	if matches := jsonPattern.FindString(text); matches != "" {
		text = matches
	}

	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
