package repository

import "course-catalog/internal/model"

// SeedCourses 演示用课程
// 4 号课程的初始人数高于容量，用于演示满员课程无法继续选课
func SeedCourses() []model.CourseEntry {
	return []model.CourseEntry{
		{ID: 1, Course: model.Course{
			Name: "Data Visualization", Professor: "Dana Willner",
			CurrentEnr: 34, MaxEnr: 35,
			Time: model.TimeSlot{Days: "TR", Start: 1100, End: 1220},
		}},
		{ID: 2, Course: model.Course{
			Name: "Data Structures", Professor: "Jim Deverick",
			CurrentEnr: 35, MaxEnr: 35,
			Time: model.TimeSlot{Days: "TR", Start: 1330, End: 1650},
		}},
		{ID: 3, Course: model.Course{
			Name: "Computational Problem Solving", Professor: "Timothy Davis",
			CurrentEnr: 30, MaxEnr: 35,
			Time: model.TimeSlot{Days: "TR", Start: 1100, End: 1220},
		}},
		{ID: 4, Course: model.Course{
			Name: "Intro Data Science", Professor: "Dana Willner",
			CurrentEnr: 36, MaxEnr: 35,
			Time: model.TimeSlot{Days: "MWF", Start: 900, End: 950},
		}},
	}
}
