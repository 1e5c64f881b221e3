package staffdirectory

// StaffMember мастер из справочника персонала
type StaffMember struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Phone         *string `json:"phone,omitempty"`
	Qualification *string `json:"qualification,omitempty"`
	IsActive      bool    `json:"isActive"`
}

// FullName возвращает полное имя мастера
func (s *StaffMember) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
