package gap

import (
	"context"
	"net/http"
)

type UploadAPI struct {
	conn    *Conn
	idToken string
}

func NewUploadAPI(conn *Conn, idToken string) *UploadAPI {
	return &UploadAPI{conn: conn, idToken: idToken}
}

// DeleteFiles removes every stored file under the publish's storage directory.
func (v *UploadAPI) DeleteFiles(ctx context.Context, publishRef string) error {
	return v.conn.Do(ctx, http.MethodPost, "publishes/delete", v.idToken, map[string]any{
		"publishRef": publishRef,
	}, nil)
}
