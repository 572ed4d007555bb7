package inmemdb

import (
	"time"

	"github.com/CyberG247/digital-assignment-portal/core/assignment"
)

func float64Ptr(f float64) *float64 { return &f }

// LoadFixtures seeds the demo assignments used in development mode,
// including STU001's already-graded Database Design submission.
func LoadFixtures(repo assignment.Repository) error {
	now := time.Now().UTC()
	fixtures := []assignment.Assignment{
		{
			ID:          "1",
			Title:       "Data Structures Lab Report",
			Subject:     "Computer Science",
			Description: "Complete analysis of Binary Search Trees implementation with complexity analysis and performance benchmarks.",
			Instructions: "Submit a comprehensive lab report including code implementation, time complexity analysis, " +
				"and performance comparison with other data structures.",
			DueAt:       time.Date(2025, time.December, 15, 23, 59, 0, 0, time.UTC),
			MaxGrade:    100,
			Submissions: []assignment.Submission{},
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Title:       "Machine Learning Project",
			Subject:     "Artificial Intelligence",
			Description: "Develop a classification model using supervised learning algorithms for a real-world dataset.",
			Instructions: "Choose a dataset, preprocess the data, implement at least two different algorithms, " +
				"compare their performance, and create a detailed report with visualizations.",
			DueAt:       time.Date(2025, time.December, 20, 23, 59, 0, 0, time.UTC),
			MaxGrade:    150,
			Submissions: []assignment.Submission{},
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Title:       "Database Design Assignment",
			Subject:     "Database Systems",
			Description: "Design and implement a normalized database for a library management system.",
			Instructions: "Create an ER diagram, normalize to 3NF, implement in SQL, and populate with sample data. " +
				"Include queries for common operations.",
			DueAt:    time.Date(2025, time.December, 10, 23, 59, 0, 0, time.UTC),
			MaxGrade: 100,
			Submissions: []assignment.Submission{
				{
					StudentID:   "STU001",
					FileLabel:   "library_db_design.pdf",
					SubmittedAt: time.Date(2025, time.December, 8, 14, 30, 0, 0, time.UTC),
					Grade:       float64Ptr(85),
				},
			},
			CreatedAt: now,
		},
		{
			ID:          "4",
			Title:       "Web Development Portfolio",
			Subject:     "Web Development",
			Description: "Create a responsive portfolio website showcasing your web development skills.",
			Instructions: "Build a portfolio using modern web technologies (HTML5, CSS3, JavaScript). " +
				"Must be responsive, accessible, and include at least 3 projects.",
			DueAt:       time.Date(2025, time.December, 25, 23, 59, 0, 0, time.UTC),
			MaxGrade:    120,
			Submissions: []assignment.Submission{},
			CreatedAt:   now,
		},
	}

	for _, a := range fixtures {
		if _, err := repo.CreateAssignment(a); err != nil {
			return err
		}
	}
	return nil
}
