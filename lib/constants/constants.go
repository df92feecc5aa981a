package constants

// SSM parameter names, all under SSM_PARAMETER_PATH.
const (
	SSM_PARAMETER_PATH = "/minecomply"
	API_BASE_URL       = "/minecomply/API_BASE_URL"
	COGNITO_CLIENT_ID  = "/minecomply/COGNITO_CLIENT_ID"
	COGNITO_REGION     = "/minecomply/COGNITO_REGION"
)

const (
	DEFAULT_REGION       = "us-east-2"
	DEFAULT_API_BASE_URL = "http://localhost:3000"
	DEV_SERVER_PORT      = "3000"
	API_PATH_PREFIX      = "/api"
	LOCALSTACK_ENDPOINT  = "http://docker.for.mac.host.internal:4566"
)

const (
	CONTENT_TYPE_JSON         = "application/json"
	DEFAULT_FILE_CONTENT_TYPE = "application/octet-stream"
	UPLOAD_TOKEN_FIELD        = "token"
	UPLOAD_FILE_FIELD         = "file"
)
