package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/yleoer/abbr/pkg/abbr"
)

// Converter 服务端依赖的转换接口
type Converter interface {
	Convert(text string, keypad bool) (abbr.Result, error)
}

// Server HTTP 转换接口
type Server struct {
	addr          string
	converter     Converter
	keypadDefault bool
	logger        *log.Logger
}

// New 创建一个新的 Server 实例
func New(addr string, c Converter, keypadDefault bool, logger *log.Logger) *Server {
	return &Server{addr: addr, converter: c, keypadDefault: keypadDefault, logger: logger}
}

// Handler 路由：GET /convert、GET /healthz，其它路径返回 404
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/convert", s.handleConvert)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "接口不存在", http.StatusNotFound)
	})
	return mux
}

// ListenAndServe 启动监听，ctx 结束时优雅关闭
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("HTTP server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Println("Shutting down HTTP server...")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "方法不允许", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	asJSON := q.Get("format") == "json"
	keypad := s.keypadDefault
	if v := q.Get("keypad"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, asJSON, errors.Newf("keypad 参数无效: %s", v))
			return
		}
		keypad = b
	}

	res, err := s.converter.Convert(q.Get("text"), keypad)
	if err != nil {
		s.logger.Printf("WARN: Convert failed for %q: %v", q.Get("text"), err)
		s.writeError(w, asJSON, err)
		return
	}

	if asJSON {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		json.NewEncoder(w).Encode(newConvertResponse(res, keypad))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(FormatResult(res, keypad)))
}

func (s *Server) writeError(w http.ResponseWriter, asJSON bool, err error) {
	if asJSON {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte("错误: " + err.Error()))
}

// convertResponse JSON 响应；请求了按键数字时 keypad_digits 总是出现，即使为空
type convertResponse struct {
	Abbreviation string  `json:"abbreviation"`
	Original     string  `json:"original"`
	KeypadDigits *string `json:"keypad_digits,omitempty"`
}

func newConvertResponse(res abbr.Result, keypad bool) convertResponse {
	out := convertResponse{Abbreviation: res.Abbreviation, Original: res.Original}
	if keypad {
		out.KeypadDigits = &res.KeypadDigits
	}
	return out
}

// FormatResult 纯文本格式：ABBR|原文，请求按键数字时为 ABBR|DIGITS|原文（DIGITS 可能为空）
func FormatResult(res abbr.Result, keypad bool) string {
	if keypad {
		return res.Abbreviation + "|" + res.KeypadDigits + "|" + res.Original
	}
	return res.Abbreviation + "|" + res.Original
}
