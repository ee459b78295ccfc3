// HustleMap - Personalized Monetization Opportunity Discovery
// Copyright 2026 HustleMap Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hustlemap/hustlemap

package skills

import "github.com/hustlemap/hustlemap/internal/models"

// seedNodes returns the built-in skill graph covering the skills the
// built-in sources reference.
func seedNodes() []Node {
	return []Node{
		// Writing track.
		{ID: "writing", Name: "Writing", Category: "writing", Complexity: 2},
		{ID: "copywriting", Name: "Copywriting", Category: "writing", Complexity: 4, Prerequisites: []string{"writing"}},
		{ID: "content marketing", Name: "Content Marketing", Category: "writing", Complexity: 5, Prerequisites: []string{"writing", "seo"}},
		{ID: "technical writing", Name: "Technical Writing", Category: "writing", Complexity: 5, Prerequisites: []string{"writing"}},
		{ID: "editing", Name: "Editing", Category: "writing", Complexity: 3, Prerequisites: []string{"writing"}},

		// Marketing track.
		{ID: "seo", Name: "Search Engine Optimization", Category: "marketing", Complexity: 5},
		{ID: "email marketing", Name: "Email Marketing", Category: "marketing", Complexity: 4, Prerequisites: []string{"copywriting"}},
		{ID: "social media", Name: "Social Media Marketing", Category: "marketing", Complexity: 3},
		{ID: "paid ads", Name: "Paid Advertising", Category: "marketing", Complexity: 6, Prerequisites: []string{"copywriting"}},

		// Design track.
		{ID: "graphic design", Name: "Graphic Design", Category: "design", Complexity: 6},
		{ID: "ui design", Name: "UI Design", Category: "design", Complexity: 7, Prerequisites: []string{"graphic design"}},
		{ID: "branding", Name: "Branding", Category: "design", Complexity: 5, Prerequisites: []string{"graphic design"}},
		{ID: "video editing", Name: "Video Editing", Category: "design", Complexity: 5},

		// Tech track.
		{ID: "html", Name: "HTML & CSS", Category: "tech", Complexity: 3},
		{ID: "javascript", Name: "JavaScript", Category: "tech", Complexity: 6, Prerequisites: []string{"html"}},
		{ID: "python", Name: "Python", Category: "tech", Complexity: 5},
		{ID: "web development", Name: "Web Development", Category: "tech", Complexity: 8, Prerequisites: []string{"javascript"}},
		{ID: "data analysis", Name: "Data Analysis", Category: "tech", Complexity: 7, Prerequisites: []string{"python"}},
		{ID: "automation", Name: "Automation & Scripting", Category: "tech", Complexity: 6, Prerequisites: []string{"python"}},
		{ID: "no-code tools", Name: "No-Code Tools", Category: "tech", Complexity: 3},

		// Business track.
		{ID: "sales", Name: "Sales", Category: "business", Complexity: 5},
		{ID: "bookkeeping", Name: "Bookkeeping", Category: "business", Complexity: 4},
		{ID: "project management", Name: "Project Management", Category: "business", Complexity: 5},
		{ID: "customer support", Name: "Customer Support", Category: "business", Complexity: 2},
		{
			ID: "online teaching", Name: "Online Teaching", Category: "business", Complexity: 4,
			Resources: []models.Resource{{Title: "Course creation basics", URL: "https://example.com/course-basics"}},
		},

		// Media track.
		{ID: "photography", Name: "Photography", Category: "media", Complexity: 5},
		{ID: "podcasting", Name: "Podcasting", Category: "media", Complexity: 4, Prerequisites: []string{"audio editing"}},
		{ID: "audio editing", Name: "Audio Editing", Category: "media", Complexity: 4},
		{ID: "voice over", Name: "Voice Over", Category: "media", Complexity: 3},
	}
}
