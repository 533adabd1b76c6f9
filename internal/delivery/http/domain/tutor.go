package domain

var (
	CHAT_SEND_SUCCESS    = "Message processed"
	CHAT_SEND_FAILED     = "Failed to process message"
	CHAT_HISTORY_SUCCESS = "Chat history retrieved"
	CHAT_HISTORY_FAILED  = "Failed to retrieve chat history"

	EDUCATION_START_SUCCESS  = "Diagnostic quiz generated"
	EDUCATION_START_FAILED   = "Failed to generate diagnostic quiz"
	EDUCATION_SUBMIT_SUCCESS = "Curriculum generated"
	EDUCATION_SUBMIT_FAILED  = "Failed to generate curriculum"

	PROGRESS_GET_SUCCESS = "Progress summary retrieved"
	PROGRESS_GET_FAILED  = "Failed to retrieve progress summary"

	TRADE_CREATE_SUCCESS = "Trade recorded"
	TRADE_CREATE_FAILED  = "Failed to record trade"
	TRADE_LIST_SUCCESS   = "Trades retrieved"
	TRADE_LIST_FAILED    = "Failed to retrieve trades"
)
