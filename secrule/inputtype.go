package secrule

import (
	"fmt"

	"secrulelang/secrule/vocab"
)

// InputType is a variable (collection or scalar) a rule can inspect.
type InputType int

// Input types, in declaration order.
const (
	_ InputType = iota
	InputArgsCombinedSize
	InputArgsGet
	InputArgsGetNames
	InputArgsPost
	InputArgsPostNames
	InputArgs
	InputArgsNames
	InputDuration
	InputFilesCombinedSize
	InputFilesNames
	InputFiles
	InputGeo
	InputIP
	InputMatchedVar
	InputMatchedVarName
	InputMatchedVars
	InputMatchedVarsNames
	InputMultipartPartHeaders
	InputQueryString
	InputRemoteAddr
	InputReqBodyProcessor
	InputRequestBasename
	InputRequestBody
	InputRequestCookiesNames
	InputRequestCookies
	InputRequestFilename
	InputRequestHeadersNames
	InputRequestHeaders
	InputRequestLine
	InputRequestMethod
	InputRequestProtocol
	InputRequestURI
	InputRequestURIRaw
	InputResponseBody
	InputResponseStatus
	InputTx
	InputUniqueID
	InputXML
	InputMultipartStrictError
	InputMultipartUnmatchedBoundary
	InputReqBodyError
	InputResource
	InputWebserverErrorLog
)

var inputTypes = vocab.New(
	// Total size of all request parameters, files excluded.
	vocab.Entry[InputType]{Symbol: InputArgsCombinedSize, Name: "ARGS_COMBINED_SIZE"},
	// Query string parameters.
	vocab.Entry[InputType]{Symbol: InputArgsGet, Name: "ARGS_GET"},
	vocab.Entry[InputType]{Symbol: InputArgsGetNames, Name: "ARGS_GET_NAMES"},
	// Request body parameters.
	vocab.Entry[InputType]{Symbol: InputArgsPost, Name: "ARGS_POST"},
	vocab.Entry[InputType]{Symbol: InputArgsPostNames, Name: "ARGS_POST_NAMES"},
	// Query string and body parameters together.
	vocab.Entry[InputType]{Symbol: InputArgs, Name: "ARGS"},
	vocab.Entry[InputType]{Symbol: InputArgsNames, Name: "ARGS_NAMES"},
	// Milliseconds elapsed since the start of the transaction.
	vocab.Entry[InputType]{Symbol: InputDuration, Name: "DURATION"},
	vocab.Entry[InputType]{Symbol: InputFilesCombinedSize, Name: "FILES_COMBINED_SIZE"},
	// Form field names used for file uploads.
	vocab.Entry[InputType]{Symbol: InputFilesNames, Name: "FILES_NAMES"},
	// Original file names of uploaded files.
	vocab.Entry[InputType]{Symbol: InputFiles, Name: "FILES"},
	vocab.Entry[InputType]{Symbol: InputGeo, Name: "GEO"},
	// Persistent per-IP storage.
	vocab.Entry[InputType]{Symbol: InputIP, Name: "IP"},
	vocab.Entry[InputType]{Symbol: InputMatchedVar, Name: "MATCHED_VAR"},
	vocab.Entry[InputType]{Symbol: InputMatchedVarName, Name: "MATCHED_VAR_NAME"},
	vocab.Entry[InputType]{Symbol: InputMatchedVars, Name: "MATCHED_VARS"},
	vocab.Entry[InputType]{Symbol: InputMatchedVarsNames, Name: "MATCHED_VARS_NAMES"},
	vocab.Entry[InputType]{Symbol: InputMultipartPartHeaders, Name: "MULTIPART_PART_HEADERS"},
	vocab.Entry[InputType]{Symbol: InputQueryString, Name: "QUERY_STRING"},
	vocab.Entry[InputType]{Symbol: InputRemoteAddr, Name: "REMOTE_ADDR"},
	// Name of the body processor in use, e.g. URLENCODED, MULTIPART, XML or JSON.
	vocab.Entry[InputType]{Symbol: InputReqBodyProcessor, Name: "REQBODY_PROCESSOR"},
	vocab.Entry[InputType]{Symbol: InputRequestBasename, Name: "REQUEST_BASENAME"},
	vocab.Entry[InputType]{Symbol: InputRequestBody, Name: "REQUEST_BODY"},
	vocab.Entry[InputType]{Symbol: InputRequestCookiesNames, Name: "REQUEST_COOKIES_NAMES"},
	vocab.Entry[InputType]{Symbol: InputRequestCookies, Name: "REQUEST_COOKIES"},
	vocab.Entry[InputType]{Symbol: InputRequestFilename, Name: "REQUEST_FILENAME"},
	vocab.Entry[InputType]{Symbol: InputRequestHeadersNames, Name: "REQUEST_HEADERS_NAMES"},
	vocab.Entry[InputType]{Symbol: InputRequestHeaders, Name: "REQUEST_HEADERS"},
	vocab.Entry[InputType]{Symbol: InputRequestLine, Name: "REQUEST_LINE"},
	vocab.Entry[InputType]{Symbol: InputRequestMethod, Name: "REQUEST_METHOD"},
	vocab.Entry[InputType]{Symbol: InputRequestProtocol, Name: "REQUEST_PROTOCOL"},
	vocab.Entry[InputType]{Symbol: InputRequestURI, Name: "REQUEST_URI"},
	// Request URI without any normalization.
	vocab.Entry[InputType]{Symbol: InputRequestURIRaw, Name: "REQUEST_URI_RAW"},
	vocab.Entry[InputType]{Symbol: InputResponseBody, Name: "RESPONSE_BODY"},
	vocab.Entry[InputType]{Symbol: InputResponseStatus, Name: "RESPONSE_STATUS"},
	// Transient transaction storage, e.g. anomaly scores.
	vocab.Entry[InputType]{Symbol: InputTx, Name: "TX"},
	vocab.Entry[InputType]{Symbol: InputUniqueID, Name: "UNIQUE_ID"},
	// Parsed XML request body, selected with XPath.
	vocab.Entry[InputType]{Symbol: InputXML, Name: "XML"},
	vocab.Entry[InputType]{Symbol: InputMultipartStrictError, Name: "MULTIPART_STRICT_ERROR"},
	vocab.Entry[InputType]{Symbol: InputMultipartUnmatchedBoundary, Name: "MULTIPART_UNMATCHED_BOUNDARY"},
	vocab.Entry[InputType]{Symbol: InputReqBodyError, Name: "REQBODY_ERROR"},
	vocab.Entry[InputType]{Symbol: InputResource, Name: "RESOURCE"},
	vocab.Entry[InputType]{Symbol: InputWebserverErrorLog, Name: "WEBSERVER_ERROR_LOG"},
)

// Name is the canonical spelling, e.g. REQUEST_HEADERS.
func (t InputType) Name() string {
	if n, ok := inputTypes.Name(t); ok {
		return n
	}
	return fmt.Sprintf("InputType(%d)", int(t))
}

func (t InputType) String() string {
	return t.Name()
}

// MarshalText implements encoding.TextMarshaler.
func (t InputType) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

// InputTypeFromName looks up an input type by its exact spelling.
func InputTypeFromName(name string) (InputType, bool) {
	return inputTypes.FromName(name)
}

// InputTypeVariants returns every input type in declaration order.
func InputTypeVariants() []InputType {
	return inputTypes.Variants()
}
