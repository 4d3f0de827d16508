package mailer

import (
	"fmt"
	"strings"

	"interviewprep/models"
)

// ReminderSubject builds the subject line for an interview reminder.
func ReminderSubject(iv *models.Interview) string {
	return fmt.Sprintf("Interview Reminder: %s - %s", iv.CompanyName, iv.Role)
}

// ReminderBody builds the HTML reminder message for an upcoming interview.
func ReminderBody(iv *models.Interview) string {
	stars := strings.Repeat("*", iv.PreparationLevel)

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif;">
	<h2 style="color: #4169E1;">Interview Reminder</h2>

	<p>Hi there!</p>

	<p>This is a friendly reminder about your upcoming interview:</p>

	<div style="background-color: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0;">
		<p><strong>Company:</strong> %s</p>
		<p><strong>Role:</strong> %s</p>
		<p><strong>Date:</strong> %s</p>
		<p><strong>Your Preparation Level:</strong> %s</p>
	</div>

	<h3 style="color: #32CD32;">Quick Tips:</h3>
	<ul>
		<li>Review the job description and company background</li>
		<li>Prepare questions to ask the interviewer</li>
		<li>Practice common interview questions</li>
		<li>Get a good night's sleep before the interview</li>
		<li>Test your tech setup (if virtual interview)</li>
	</ul>

	<p style="margin-top: 30px;">Good luck! You've got this!</p>

	<hr style="margin-top: 30px;">
	<p style="color: gray; font-size: 12px;">
		Sent from InterviewPrep Pro<br>
		To manage your reminders, visit the app.
	</p>
</body>
</html>`,
		iv.CompanyName,
		iv.Role,
		iv.InterviewDate.Format("January 2, 2006"),
		stars,
	)
}

// TestBody builds the HTML body for the configuration test email.
func TestBody() string {
	return `<html>
<body style="font-family: Arial, sans-serif;">
	<h2 style="color: #4169E1;">Test Email Successful!</h2>
	<p>Your email configuration is working correctly.</p>
	<p>You will now receive interview reminders at this email address.</p>
	<hr style="margin-top: 30px;">
	<p style="color: gray; font-size: 12px;">InterviewPrep Pro</p>
</body>
</html>`
}
