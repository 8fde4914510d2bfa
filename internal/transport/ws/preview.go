package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"surveyforge/internal/service"
	"surveyforge/pkg/fault"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// PreviewHandler streams live logic evaluation to the survey builder: the
// client sends the current answer set after every change and gets the full
// decision map back, the same result the evaluate-logic endpoint returns.
type PreviewHandler struct {
	logicSvc *service.LogicService
	log      *logrus.Logger
}

// NewPreviewHandler creates a new preview socket handler
func NewPreviewHandler(logicSvc *service.LogicService, log *logrus.Logger) *PreviewHandler {
	return &PreviewHandler{
		logicSvc: logicSvc,
		log:      log,
	}
}

type previewRequest struct {
	Answers map[string]string `json:"answers"`
}

// Preview handles GET /v1/ws/surveys/{surveyId}/preview
func (h *PreviewHandler) Preview(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]

	// Reject unknown surveys before upgrading so the client gets a real
	// status code instead of a dropped socket.
	if _, err := h.logicSvc.Map(r.Context(), surveyID); err != nil {
		if fault.IsNotFound(err) {
			http.Error(w, "survey not found", http.StatusNotFound)
			return
		}
		http.Error(w, "preview unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	h.log.WithField("surveyId", surveyID).Info("preview session opened")

	for {
		var req previewRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("preview session read error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		result, err := h.logicSvc.Evaluate(r.Context(), surveyID, req.Answers)
		if err != nil {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			conn.WriteJSON(map[string]string{"error": err.Error()})
			continue
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(result); err != nil {
			return
		}
	}
}
