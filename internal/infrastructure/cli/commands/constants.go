package commands

// CLI-specific constants
const (
	// DefaultEditorCommand is the default editor command
	DefaultEditorCommand = "vi"
	envKeyEditor         = "EDITOR"
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrHistoryStoreUnavailable  = "history store unavailable"
	ErrInvalidEntryID           = "invalid history id %q"
	ErrEntryNotFound            = "history entry %d not found"
)

// Success messages
const (
	MsgConfigurationValid = "Configuration valid"
	MsgNoHistoryRecorded  = "暂无历史记录"
	MsgHistoryCleared     = "历史记录已清空"
	MsgHistoryCancelled   = "已取消"
	MsgEntryDeleted       = "已删除 #%d\n"
	MsgCopied             = "已复制到剪贴板"
)

// Prompts
const (
	PromptConfirmClear = "确定要清空所有历史记录吗？"
)
