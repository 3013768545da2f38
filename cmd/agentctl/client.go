package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(30 * time.Second)
}

func runSend(baseURL, tenantID, customerID, conversationID, message string, out io.Writer) error {
	body := map[string]string{
		"message":    message,
		"customerId": customerID,
		"tenantId":   tenantID,
	}
	if conversationID != "" {
		body["conversationId"] = conversationID
	}

	resp, err := newClient(baseURL).R().
		SetBody(body).
		Post("/api/v1/message/text")
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("send message: status %d: %s", resp.StatusCode(), resp.String())
	}
	return printJSON(out, resp.Body())
}

func runShowConversation(baseURL, tenantID, conversationID string, out io.Writer) error {
	resp, err := newClient(baseURL).R().
		Get(fmt.Sprintf("/api/v1/conversation/%s/%s", tenantID, conversationID))
	if err != nil {
		return fmt.Errorf("get conversation: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("get conversation: status %d: %s", resp.StatusCode(), resp.String())
	}
	return printJSON(out, resp.Body())
}

func runEndConversation(baseURL, tenantID, conversationID string, out io.Writer) error {
	resp, err := newClient(baseURL).R().
		Delete(fmt.Sprintf("/api/v1/conversation/%s/%s", tenantID, conversationID))
	if err != nil {
		return fmt.Errorf("end conversation: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("end conversation: status %d: %s", resp.StatusCode(), resp.String())
	}
	return printJSON(out, resp.Body())
}

func printJSON(out io.Writer, raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		_, werr := out.Write(raw)
		return werr
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
