package service

import (
	"encoding/json"

	ws "assetflow/internal/websocket"
)

// Websocket payload pushed when a workflow reaches a milestone state.
type WorkflowEvent struct {
	Event string                 `json:"event"`
	Data  map[string]interface{} `json:"data"`
}

// Event name constants
const (
	EventTransferApproved     = "transfer_approved"
	EventDisposalApproved     = "disposal_approved"
	EventMaintenanceCompleted = "maintenance_completed"
	EventCheckFinished        = "inventory_check_finished"
)

// notify broadcasts a workflow event to connected clients. Best-effort: a nil
// hub (tests) or marshal failure is ignored, workflow state is already
// committed by the time this runs.
func notify(hub *ws.Hub, event string, data map[string]interface{}) {
	if hub == nil {
		return
	}
	payload, err := json.Marshal(WorkflowEvent{Event: event, Data: data})
	if err != nil {
		return
	}
	hub.Broadcast <- payload
}
