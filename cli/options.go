package cli

// Options represents command line options
type Options struct {
	Config    string `short:"c" long:"config" description:"config URL (yaml)"`
	BaseURL   string `short:"u" long:"url" description:"backend base URL"`
	CookieJar string `short:"j" long:"cookie-jar" description:"cookie jar URL, defaults to ~/.authstore/cookies.json"`
	Verbose   bool   `short:"v" long:"verbose" description:"log backend requests"`

	Signup SignupOptions `command:"signup" description:"sign up and store the session cookie"`
	Show   ShowOptions   `command:"show" description:"print the stored session"`
	Token  TokenOptions  `command:"token" description:"print the stored session token"`
	Clear  ClearOptions  `command:"clear" description:"remove the stored session"`
	Mock   MockOptions   `command:"mock" description:"run a local signup backend"`
}

// SignupOptions represents signup command options
type SignupOptions struct {
	Email    string `short:"e" long:"email" description:"account email"`
	Password string `short:"p" long:"password" description:"account password"`
	Name     string `short:"n" long:"name" description:"account name"`
	Data     string `short:"d" long:"data" description:"raw JSON request body, overrides other fields"`
}

// ShowOptions represents show command options
type ShowOptions struct{}

// TokenOptions represents token command options
type TokenOptions struct{}

// ClearOptions represents clear command options
type ClearOptions struct{}

// MockOptions represents mock command options
type MockOptions struct {
	Addr string `short:"a" long:"addr" description:"listen address" default:"127.0.0.1:8080"`
	Key  string `short:"k" long:"key" description:"token signing key"`
}
