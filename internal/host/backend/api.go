package backend

import (
	"context"
	"fmt"

	"github.com/dshills/nimbus/internal/float"
)

// BindAPI registers the RPC methods the host side calls to drive the
// float. Methods work with both rpcrequest and rpcnotify; decode
// failures are reported to the host and returned to request callers.
func (n *Nvim) BindAPI(mgr *float.Manager) error {
	methods := []struct {
		name string
		fn   any
	}{
		{"nimbus_show", func(rawDocs []any, rawOpts any) error {
			documents, err := decodeDocs(rawDocs)
			if err != nil {
				err = fmt.Errorf("show: %w", err)
				n.Report(err)
				return err
			}
			// Empty option tables may arrive as arrays; both mean defaults.
			fields, _ := rawOpts.(map[string]any)
			mgr.Show(context.Background(), documents, decodeOptions(fields, mgr.Defaults()))
			return nil
		}},
		{"nimbus_close", func() {
			mgr.Close()
		}},
		{"nimbus_check_retrigger", func(buf int) (bool, error) {
			return mgr.IsRetriggerFor(buf), nil
		}},
		{"nimbus_activated", func() (bool, error) {
			return mgr.Activated(context.Background())
		}},
	}
	for _, m := range methods {
		if err := n.client.RegisterHandler(m.name, m.fn); err != nil {
			return fmt.Errorf("register %s: %w", m.name, err)
		}
	}
	return nil
}
