package request_tokens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	users_testing "trailiva-backend/internal/features/users/testing"
	workspaces_dto "trailiva-backend/internal/features/workspaces/dto"
	workspaces_testing "trailiva-backend/internal/features/workspaces/testing"
	test_utils "trailiva-backend/internal/util/testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestRouter(env *testEnv) *gin.Engine {
	return workspaces_testing.CreateTestRouter(env.UserService, NewRequestTokenController(env.service))
}

func createPublicTestRouter(env *testEnv) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRequestTokenController(env.service).RegisterPublicRoutes(router.Group("/api/v1"))

	return router
}

func Test_VerifyUser_ViaAPI_WithoutAuthHeader(t *testing.T) {
	env := newTestEnv(nil)
	router := createPublicTestRouter(env)
	env.signUpUnverified(t, "new@x.com")

	tokens := env.verificationTokens()
	require.Len(t, tokens, 1)

	var response map[string]string
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/request-tokens/user/verify",
		"",
		RedeemTokenRequestDTO{Token: tokens[0].Token},
		http.StatusOK,
		&response,
	)
	assert.Equal(t, "new@x.com", response["email"])

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/request-tokens/user/verify",
		"",
		RedeemTokenRequestDTO{Token: tokens[0].Token},
		http.StatusBadRequest,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/request-tokens/user/verify/resend",
		"",
		ResendVerificationRequestDTO{Email: "new@x.com"},
		http.StatusConflict,
	)
	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/request-tokens/user/verify/resend",
		"",
		ResendVerificationRequestDTO{Email: "nobody@x.com"},
		http.StatusNotFound,
	)
}

func Test_InviteAndRedeem_ViaAPI(t *testing.T) {
	env := newTestEnv(nil)
	router := createTestRouter(env)
	creatorToken, err := env.UserService.GenerateAccessToken(env.creator)
	require.NoError(t, err)
	_, inviteeToken := users_testing.CreateTestUser(env.UserService, "a@x.com")

	var result InvitationResultDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		fmt.Sprintf("/api/v1/workspaces/%s/invitations", env.workspace.ID),
		"Bearer "+creatorToken.Token,
		InviteRequestDTO{Emails: []string{"a@x.com", "missing@x.com"}},
		http.StatusOK,
		&result,
	)
	assert.Equal(t, []string{"a@x.com"}, result.Invited)
	require.Len(t, result.Failed, 1)

	tokens := env.tokenRepository.Tokens()
	require.Len(t, tokens, 1)

	var workspace workspaces_dto.WorkspaceResponseDTO
	test_utils.MakePostRequestAndUnmarshal(
		t,
		router,
		"/api/v1/request-tokens/workspace/redeem",
		"Bearer "+inviteeToken.Token,
		RedeemTokenRequestDTO{Token: tokens[0].Token},
		http.StatusOK,
		&workspace,
	)
	assert.Equal(t, env.workspace.ID, workspace.ID)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/request-tokens/workspace/redeem",
		"Bearer "+inviteeToken.Token,
		RedeemTokenRequestDTO{Token: tokens[0].Token},
		http.StatusBadRequest,
	)
}

func Test_RedeemExpiredToken_ViaAPI_ReturnsGone(t *testing.T) {
	env := newTestEnv(nil)
	router := createTestRouter(env)
	_, inviteeToken := users_testing.CreateTestUser(env.UserService, "a@x.com")
	token := env.issue(t, "a@x.com", "")

	env.now = token.ExpiresAt.Add(time.Second)

	test_utils.MakePostRequest(
		t,
		router,
		"/api/v1/request-tokens/workspace/redeem",
		"Bearer "+inviteeToken.Token,
		RedeemTokenRequestDTO{Token: token.Token},
		http.StatusGone,
	)
}

func Test_InviteFromCSV_ViaAPI(t *testing.T) {
	env := newTestEnv(nil)
	router := createTestRouter(env)
	creatorToken, err := env.UserService.GenerateAccessToken(env.creator)
	require.NoError(t, err)
	users_testing.CreateTestUser(env.UserService, "a@x.com")
	users_testing.CreateTestUser(env.UserService, "m@x.com")

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "members.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("email\na@x.com\nm@x.com\n"))
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("role", "MODERATOR"))
	require.NoError(t, writer.Close())

	resp := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodPost,
		URL:            fmt.Sprintf("/api/v1/workspaces/%s/invitations/csv", env.workspace.ID),
		AuthToken:      "Bearer " + creatorToken.Token,
		RawBody:        body.Bytes(),
		ContentType:    writer.FormDataContentType(),
		ExpectedStatus: http.StatusOK,
	})

	var result InvitationResultDTO
	require.NoError(t, json.Unmarshal(resp.Body, &result))
	assert.Equal(t, []string{"a@x.com", "m@x.com"}, result.Invited)
	assert.Empty(t, result.Failed)

	for _, token := range env.tokenRepository.Tokens() {
		require.NotNil(t, token.MemberRole)
		assert.Equal(t, "MODERATOR", string(*token.MemberRole))
	}
}
