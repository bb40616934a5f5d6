package config

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLokiLogger_PushesEntries(t *testing.T) {
	RegisterTestingT(t)

	received := make(chan LokiLogEntry, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		entry := LokiLogEntry{}
		_ = json.Unmarshal(body, &entry)
		received <- entry

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	logger := newLokiLogger(zap.NewNop(), "joiner", server.URL)
	logger.SendToLoki(context.Background(), zapcore.WarnLevel, "Member created", []zap.Field{
		zap.String("member_id", "42"),
		zap.Int("status", 201),
	})

	var entry LokiLogEntry
	Eventually(received, time.Second).Should(Receive(&entry))

	Expect(entry.Streams).To(HaveLen(1))
	Expect(entry.Streams[0].Stream).To(HaveKeyWithValue("level", "warn"))

	line := map[string]any{}
	Expect(json.Unmarshal([]byte(entry.Streams[0].Values[0][1]), &line)).To(Succeed())
	Expect(line).To(HaveKeyWithValue("message", "Member created"))
	Expect(line).To(HaveKeyWithValue("member_id", "42"))
	Expect(line).To(HaveKeyWithValue("status", float64(201)))
	Expect(line).To(HaveKeyWithValue("service", "joiner"))
}

func TestLokiLogger_WithoutURLDoesNotPush(t *testing.T) {
	RegisterTestingT(t)

	logger := NewNopLokiLogger("joiner")

	Expect(logger.lokiURL).To(BeEmpty())
	logger.InfoWithTrace(context.Background(), "quiet")
}
