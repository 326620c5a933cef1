package v1

const basePath = "/api/attendance/v1.0"

type VeritimeClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

// NewVeritimeClient initializes the API client
func NewVeritimeClient(baseURL string, token string) *VeritimeClient {
	t := NewTransport(baseURL, token)
	return &VeritimeClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
