package paintscript

const (
	TokenEndStatement = ';'
	TokenSpace        = ' '
	TokenTab          = '\t'
	TokenNewLine      = '\n'
	TokenCarriage     = '\r'
	TokenOpenBlock    = '{'
	TokenCloseBlock   = '}'
	TokenQuote        = '"'
	TokenEscape       = '\\'
	TokenVariable     = '@'
)

// 2-char tokens
const (
	TokenOpenBlockComment  = "/*"
	TokenCloseBlockComment = "*/"
	TokenOpenLineComment   = "//"
)
