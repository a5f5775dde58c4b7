package system

// UserInfo describes a server account.
type UserInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	Active      bool   `json:"active"`
	Superuser   bool   `json:"superuser"`
}

// UserPatch is a partial update of an account. Nil fields are left untouched.
type UserPatch struct {
	DisplayName *string `json:"displayName,omitempty"`
	Email       *string `json:"email,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Password    *string `json:"password,omitempty"`
}

// TraceElement is one frame of a thread's stack.
type TraceElement struct {
	ClassName  string `json:"className"`
	FileName   string `json:"fileName,omitempty"`
	MethodName string `json:"methodName"`
	LineNumber int    `json:"lineNumber"`
}

// ThreadInfo describes one server thread.
type ThreadInfo struct {
	ID        int64          `json:"id,string"`
	Name      string         `json:"name"`
	State     string         `json:"state"`
	Native    bool           `json:"native"`
	Suspended bool           `json:"suspended"`
	Group     string         `json:"group,omitempty"`
	Trace     []TraceElement `json:"trace,omitempty"`
}
