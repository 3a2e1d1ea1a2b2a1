package assign_instructor

// AssignInstructorRequest HTTP request model
type AssignInstructorRequest struct {
	InstructorID int64 `json:"instructorId"`
}
