package adapthttp

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"kuritterweight/internal/domain"
)

const maxWebhookBody = 1 << 20

//go:embed webhook.schema.json
var webhookSchemaJSON string

var webhookSchema = mustCompileSchema("webhook.schema.json", webhookSchemaJSON)

func mustCompileSchema(name, src string) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
	if err != nil {
		panic(fmt.Sprintf("adapthttp: parse %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("adapthttp: add %s: %v", name, err))
	}
	sch, err := c.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("adapthttp: compile %s: %v", name, err))
	}
	return sch
}

type webhookBody struct {
	Events []domain.Event `json:"events"`
}

var errEnvConfig = errors.New("environment configuration error")

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.webhook == nil {
		s.logger.Printf("webhook: service not configured")
		writeError(w, http.StatusInternalServerError, errEnvConfig)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}
	if err := webhookSchema.Validate(inst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid webhook body: %w", err))
		return
	}

	var body webhookBody
	if err := json.Unmarshal(raw, &body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
		return
	}

	if out := s.webhook.Handle(r.Context(), body.Events); !out.OK() {
		writeJSON(w, http.StatusOK, map[string]any{"status": out.Status})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
}
