package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/lwmacct/251207-go-pkg-varsub/pkg/propfile"
	"github.com/lwmacct/251207-go-pkg-varsub/pkg/varsub"
)

// maxBodyBytes 单个替换请求的最大字节数。
const maxBodyBytes = 4 << 20

// SubstituteRequest POST /v1/substitute 请求体。
type SubstituteRequest struct {
	Input            string `json:"input"`
	Variables        string `json:"variables"` // properties 格式的变量
	SubstitutionType string `json:"substitutionType"`
	VariablePrefix   string `json:"variablePrefix"`
	VariablePostfix  string `json:"variablePostfix"`
}

// SubstituteResponse POST /v1/substitute 成功响应。
type SubstituteResponse struct {
	Output string `json:"output"`
}

// ErrorResponse 错误响应。
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// Snapshot 返回每个请求使用的系统属性与环境变量快照。
type Snapshot func() (system, env *varsub.Store)

// Handler 替换服务的 HTTP 路由。
type Handler struct {
	snapshot Snapshot
	mux      *http.ServeMux
}

// NewHandler 创建 Handler，snapshot 为 nil 时使用当前进程的系统属性与环境变量。
func NewHandler(snapshot Snapshot) *Handler {
	if snapshot == nil {
		snapshot = func() (*varsub.Store, *varsub.Store) {
			return varsub.SystemProperties(), varsub.Environment()
		}
	}

	h := &Handler{snapshot: snapshot, mux: http.NewServeMux()}
	// 健康检查端点
	h.mux.HandleFunc("GET /health", h.health)
	h.mux.HandleFunc("POST /v1/substitute", h.substitute)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.Header.Get("X-Request-Id")
	if id == "" {
		id = ulid.Make().String()
	}
	w.Header().Set("X-Request-Id", id)

	start := time.Now()
	h.mux.ServeHTTP(w, r)
	slog.Debug("Request handled", "id", id, "method", r.Method, "path", r.URL.Path, "latency", time.Since(start))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) substitute(w http.ResponseWriter, r *http.Request) {
	id := w.Header().Get("X-Request-Id")

	var req SubstituteRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, id, "decode request: "+err.Error())
		return
	}

	raw, err := propfile.ParseString(req.Variables)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, "parse variables: "+err.Error())
		return
	}

	mode, err := varsub.ParseMode(req.SubstitutionType)
	if err != nil {
		writeError(w, http.StatusBadRequest, id, err.Error())
		return
	}

	system, env := h.snapshot()
	proc := &varsub.Processor{
		Markers:     varsub.NewMarkers(req.VariablePrefix, req.VariablePostfix),
		Mode:        mode,
		System:      system,
		Environment: env,
	}

	out, err := proc.Process(req.Input, raw)
	switch {
	case errors.Is(err, varsub.ErrSelfReference), errors.Is(err, varsub.ErrUnresolved):
		slog.Warn("Substitution failed", "id", id, "error", err)
		writeError(w, http.StatusUnprocessableEntity, id, err.Error())
		return
	case err != nil:
		slog.Error("Substitution failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, id, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SubstituteResponse{Output: out})
}

func writeError(w http.ResponseWriter, status int, id, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, RequestID: id})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Write response failed", "error", err)
	}
}
