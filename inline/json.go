package inline

import (
	"encoding/json"
	"io"

	"github.com/anisan-cli/anifetch/fetch"
	"github.com/anisan-cli/anifetch/source"
	"github.com/samber/lo"
)

// SourceStatus is the state of one source at the time the output was written.
type SourceStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
	Error string `json:"error,omitempty"`
	Items int    `json:"items"`
}

type Output struct {
	Session   string              `json:"session"`
	Request   source.Request      `json:"request"`
	Completed bool                `json:"completed"`
	Sources   []SourceStatus      `json:"sources"`
	Result    []source.MatchMedia `json:"result"`
}

func asJson(session *fetch.Session, completed bool, items []source.MatchMedia) Output {
	return Output{
		Session:   session.ID(),
		Request:   session.Request(),
		Completed: completed,
		Sources: lo.Map(session.Sources(), func(r *fetch.SourceResult, _ int) SourceStatus {
			status := SourceStatus{
				ID:    r.ID(),
				Name:  r.Instance().Name,
				Items: len(r.Items()),
			}
			switch state := r.State().(type) {
			case fetch.Failed:
				status.State = "failed"
				status.Error = state.Err.Error()
			default:
				status.State = state.String()
			}
			return status
		}),
		// never null in the output
		Result: lo.Ternary(items == nil, []source.MatchMedia{}, items),
	}
}

func writeJson(out io.Writer, output Output) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
