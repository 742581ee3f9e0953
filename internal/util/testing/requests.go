package test_utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RequestOptions struct {
	Method         string
	URL            string
	AuthToken      string
	Body           any
	RawBody        []byte
	ContentType    string
	ExpectedStatus int
}

type TestResponse struct {
	StatusCode int
	Body       []byte
}

func MakeRequest(t *testing.T, router *gin.Engine, options RequestOptions) *TestResponse {
	t.Helper()

	var requestBody *bytes.Buffer
	switch {
	case options.RawBody != nil:
		requestBody = bytes.NewBuffer(options.RawBody)
	case options.Body != nil:
		bodyJSON, err := json.Marshal(options.Body)
		require.NoError(t, err)
		requestBody = bytes.NewBuffer(bodyJSON)
	default:
		requestBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(options.Method, options.URL, requestBody)
	require.NoError(t, err)

	contentType := options.ContentType
	if contentType == "" && options.Body != nil {
		contentType = "application/json"
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if options.AuthToken != "" {
		req.Header.Set("Authorization", options.AuthToken)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if options.ExpectedStatus != 0 {
		assert.Equal(t, options.ExpectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	}

	return &TestResponse{
		StatusCode: w.Code,
		Body:       w.Body.Bytes(),
	}
}

func MakeGetRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodGet,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func MakeGetRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
	response any,
) *TestResponse {
	t.Helper()

	resp := MakeGetRequest(t, router, url, authToken, expectedStatus)
	unmarshal(t, resp, response)
	return resp
}

func MakePostRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPost,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePostRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) *TestResponse {
	t.Helper()

	resp := MakePostRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, resp, response)
	return resp
}

func MakePutRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodPut,
		URL:            url,
		AuthToken:      authToken,
		Body:           body,
		ExpectedStatus: expectedStatus,
	})
}

func MakePutRequestAndUnmarshal(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	body any,
	expectedStatus int,
	response any,
) *TestResponse {
	t.Helper()

	resp := MakePutRequest(t, router, url, authToken, body, expectedStatus)
	unmarshal(t, resp, response)
	return resp
}

func MakeDeleteRequest(
	t *testing.T,
	router *gin.Engine,
	url, authToken string,
	expectedStatus int,
) *TestResponse {
	t.Helper()

	return MakeRequest(t, router, RequestOptions{
		Method:         http.MethodDelete,
		URL:            url,
		AuthToken:      authToken,
		ExpectedStatus: expectedStatus,
	})
}

func unmarshal(t *testing.T, resp *TestResponse, response any) {
	t.Helper()

	if response == nil || resp.StatusCode >= http.StatusBadRequest {
		return
	}

	require.NoError(t, json.Unmarshal(resp.Body, response), "body: %s", string(resp.Body))
}
