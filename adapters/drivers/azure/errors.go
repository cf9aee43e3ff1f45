package azure

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
)

func azureShorterErrorString(err error) string {
	errstr := err.Error()
	var responseErr *azcore.ResponseError
	if errors.As(err, &responseErr) {
		errstr = fmt.Sprintf("%d %s (%s)", responseErr.StatusCode, http.StatusText(responseErr.StatusCode), responseErr.ErrorCode)
	}
	return errstr
}

// isNotFoundError reports whether err is an Azure 404 response.
func isNotFoundError(err error) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusNotFound
	}
	return false
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
