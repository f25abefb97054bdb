package dto

import "time"

type AddBookInput struct {
	ISBN            string
	Title           string
	PublicationYear *int
	Pages           *int
	Description     string
	Authors         []string
	Subjects        []string
}

type BookOutput struct {
	ISBN            string
	Title           string
	PublicationYear *int
	Pages           *int
	Description     string
	AddedAt         time.Time
	Authors         []string
	Subjects        []string
	Byline          string
}

type AuthorOutput struct {
	ID   int64
	Name string
}

type SubjectOutput struct {
	ID   int64
	Name string
}

type TallyOutput struct {
	ID    int64
	Name  string
	Count int
}
