package models

import "time"

type DashboardStats struct {
	Users         int64                `json:"users"`
	Admins        int64                `json:"admins"`
	Leads         int64                `json:"leads"`
	LeadsBySource map[LeadSource]int64 `json:"leadsBySource"`
	Enrollments   int64                `json:"enrollments"`
	Blogs         int64                `json:"blogs"`
	Experts       int64                `json:"experts"`
	Services      int64                `json:"services"`
	Trainings     int64                `json:"trainings"`
}

type GrowthStats struct {
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	NewUsers       int64     `json:"newUsers"`
	NewLeads       int64     `json:"newLeads"`
	NewEnrollments int64     `json:"newEnrollments"`
}

// PopularProgram is one bucket of enrollments grouped by program title.
type PopularProgram struct {
	Title string `json:"title" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}
