package connector

import (
	"encoding/json"
	"strings"

	chartboard "github.com/goliatone/go-chartboard/components/chartboard"
)

// Table identifies one table within a dataset.
type Table struct {
	ID        string `json:"id"`
	TableName string `json:"table_name"`
}

// DBConnectionRequest asks the data service to open a database-backed
// datasource.
type DBConnectionRequest struct {
	Datasource string `json:"datasource"`
	Table      string `json:"table"`
}

// DBConnectionResult carries the connection handle plus the fetched records.
type DBConnectionResult struct {
	DBConnectionID string              `json:"db_connection_id"`
	Data           []chartboard.Record `json:"data"`
}

// ChatRequest is the prompt posted to the chat backend.
type ChatRequest struct {
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature,omitempty"`
	IndexName   string  `json:"index_name,omitempty"`
}

// ChatResponse is the backend's answer. Chart fields ride alongside the text
// response; ShowGraph gates whether they are meaningful, and the backend
// emits it either as a boolean or as the string "TRUE"/"FALSE". Data maps
// each series name to a column of values.
type ChatResponse struct {
	Response  string           `json:"response"`
	Data      map[string][]any `json:"data,omitempty"`
	ShowGraph FlexBool         `json:"showGraph"`
	GraphType string           `json:"graphType,omitempty"`
	XAxis     string           `json:"xAxis,omitempty"`
	YAxis     string           `json:"yAxis,omitempty"`
	Title     string           `json:"title,omitempty"`
}

// Message converts the wire response into the chat message form the pin board
// consumes.
func (r ChatResponse) Message(sender string) chartboard.ChatMessage {
	msg := chartboard.ChatMessage{
		Sender:  sender,
		Content: r.Response,
	}
	if len(r.Data) > 0 {
		msg.ChartData = &chartboard.ChatChart{
			Data:      r.Data,
			ShowGraph: bool(r.ShowGraph),
			GraphType: r.GraphType,
			XAxis:     r.XAxis,
			YAxis:     r.YAxis,
			Title:     r.Title,
		}
	}
	return msg
}

// FlexBool accepts JSON booleans as well as the upstream's "TRUE"/"FALSE"
// string convention. Anything other than true/"TRUE" is false.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (b *FlexBool) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*b = FlexBool(asBool)
		return nil
	}
	var asString string
	if err := json.Unmarshal(data, &asString); err != nil {
		return err
	}
	*b = FlexBool(strings.EqualFold(strings.TrimSpace(asString), "true"))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}
