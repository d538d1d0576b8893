package query

// Schemas of the listable collections. Column names match db/migrations.

var Bootcamps = NewSchema("bootcamps", "bootcamps",
	Field{Name: "id", Column: "id", Type: ID},
	Field{Name: "name", Column: "name", Type: String},
	Field{Name: "slug", Column: "slug", Type: String},
	Field{Name: "description", Column: "description", Type: String},
	Field{Name: "website", Column: "website", Type: String},
	Field{Name: "phone", Column: "phone", Type: String},
	Field{Name: "email", Column: "email", Type: String},
	Field{Name: "careers", Column: "careers", Type: StringArray},
	Field{Name: "averageRating", Column: "average_rating", Type: Number},
	Field{Name: "averageCost", Column: "average_cost", Type: Number},
	Field{Name: "photo", Column: "photo", Type: String},
	Field{Name: "housing", Column: "housing", Type: Bool},
	Field{Name: "jobAssistance", Column: "job_assistance", Type: Bool},
	Field{Name: "jobGuarantee", Column: "job_guarantee", Type: Bool},
	Field{Name: "acceptGi", Column: "accept_gi", Type: Bool},
	Field{Name: "user", Column: "user_id", Type: ID},
	Field{Name: "createdAt", Column: "created_at", Type: Time},
	Field{Name: "location.city", Column: "city", Type: String},
	Field{Name: "location.state", Column: "state", Type: String},
	Field{Name: "location.zipcode", Column: "zipcode", Type: String},
	Field{Name: "location.country", Column: "country", Type: String},
).WithRelations("location", "courses")

var Courses = NewSchema("courses", "courses",
	Field{Name: "id", Column: "id", Type: ID},
	Field{Name: "title", Column: "title", Type: String},
	Field{Name: "description", Column: "description", Type: String},
	Field{Name: "weeks", Column: "weeks", Type: Number},
	Field{Name: "tuition", Column: "tuition", Type: Number},
	Field{Name: "minimumSkill", Column: "minimum_skill", Type: String},
	Field{Name: "scholarshipAvailable", Column: "scholarship_available", Type: Bool},
	Field{Name: "bootcampId", Column: "bootcamp_id", Type: ID},
	Field{Name: "user", Column: "user_id", Type: ID},
	Field{Name: "createdAt", Column: "created_at", Type: Time},
).WithRelations("bootcamp")

var Reviews = NewSchema("reviews", "reviews",
	Field{Name: "id", Column: "id", Type: ID},
	Field{Name: "title", Column: "title", Type: String},
	Field{Name: "text", Column: "text", Type: String},
	Field{Name: "rating", Column: "rating", Type: Number},
	Field{Name: "bootcampId", Column: "bootcamp_id", Type: ID},
	Field{Name: "user", Column: "user_id", Type: ID},
	Field{Name: "createdAt", Column: "created_at", Type: Time},
).WithRelations("bootcamp")

var Users = NewSchema("users", "users",
	Field{Name: "id", Column: "id", Type: ID},
	Field{Name: "name", Column: "name", Type: String},
	Field{Name: "email", Column: "email", Type: String},
	Field{Name: "role", Column: "role", Type: String},
	Field{Name: "avatar", Column: "avatar", Type: String},
	Field{Name: "isEmailConfirmed", Column: "is_email_confirmed", Type: Bool},
	Field{Name: "createdAt", Column: "created_at", Type: Time},
)
