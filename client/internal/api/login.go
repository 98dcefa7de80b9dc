package api

import "net/http"

// LoginKind - вариант результата входа на сервер.
type LoginKind int

const (
	LoginAccepted    LoginKind = iota // Сервер подтвердил вход
	LoginRejected                     // Сервер ответил отказом
	LoginUnreachable                  // Ответа нет, нужен локальный вход
)

func (k LoginKind) String() string {
	switch k {
	case LoginAccepted:
		return "accepted"
	case LoginRejected:
		return "rejected"
	case LoginUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// LoginOutcome - разобранный ответ на запрос входа.
// Username заполнен только для LoginAccepted.
type LoginOutcome struct {
	Kind     LoginKind
	Username string
	Status   int
	Err      error
}

// Accepted сообщает, что вход на сервере выполнен.
func (o LoginOutcome) Accepted() bool {
	return o.Kind == LoginAccepted
}

// ClassifyLogin разбирает ответ входа. Успех имеет единственный признак:
// статус 2xx. Имя пользователя берется из тела ответа, если сервер его вернул,
// иначе используется введенное.
func ClassifyLogin(resp Response, submitted string) LoginOutcome {
	if !resp.Reachable() {
		return LoginOutcome{Kind: LoginUnreachable, Err: resp.Err}
	}
	if !resp.OK {
		return LoginOutcome{Kind: LoginRejected, Status: resp.Status}
	}
	return LoginOutcome{Kind: LoginAccepted, Username: effectiveUsername(resp, submitted), Status: resp.Status}
}

// ClassifyLoginLenient повторяет совместимый режим для серверов, которые
// сообщают об успехе по-разному: 2xx, body.ok == true, наличие body.username
// или статус 200/201. Может дать ложный успех, если тело ответа с ошибкой
// содержит username.
func ClassifyLoginLenient(resp Response, submitted string) LoginOutcome {
	bodyOK, _ := resp.Field("ok")
	success := resp.OK ||
		bodyOK == true ||
		resp.StringField("username") != "" ||
		resp.Status == http.StatusOK || resp.Status == http.StatusCreated
	if success {
		return LoginOutcome{Kind: LoginAccepted, Username: effectiveUsername(resp, submitted), Status: resp.Status}
	}
	if !resp.Reachable() {
		return LoginOutcome{Kind: LoginUnreachable, Err: resp.Err}
	}
	return LoginOutcome{Kind: LoginRejected, Status: resp.Status}
}

func effectiveUsername(resp Response, submitted string) string {
	if username := resp.StringField("username"); username != "" {
		return username
	}
	return submitted
}
