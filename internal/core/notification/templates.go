package notification

import "html/template"

type welcomeData struct {
	Username string
	LogoURL  string
}

const jobHeader = `<html>
<body>
    <div style="text-align: center;">
        {{- if .LogoURL}}
        <img src="{{.LogoURL}}" alt="{{.CompanyName}} Logo" style="width: 100px; height: auto;">
        {{- end}}
        <h2>{{.CompanyName}}</h2>
    </div>
    <p>Dear Applicant,</p>
`

const jobFooter = `    <p>Best regards,</p>
    <p>The Hiring Team,</p>
    <strong>{{.CompanyName}}</strong>
</body>
</html>
`

var (
	confirmationTemplate = &mailTemplate{
		subject: "Job Application Confirmation",
		body: template.Must(template.New("confirmation").Parse(jobHeader + `
    <p>Thank you for applying for the position of <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>.</p>
    <p>Your application has been successfully submitted.</p>
    <p>Due to the high volume of applications, we will carefully review your profile and sincerely consider you for applicable roles.</p>
` + jobFooter)),
	}

	selectionTemplate = &mailTemplate{
		subject: "Congratulations! Your Application Has Been Accepted",
		body: template.Must(template.New("selection").Parse(jobHeader + `
    <p>We are pleased to inform you that your application for the position of <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong> has been accepted. Congratulations!</p>
    <p>Our team will contact you shortly to discuss the next steps in the hiring process.</p>
` + jobFooter)),
	}

	rejectionTemplate = &mailTemplate{
		subject: "Application Status Update",
		body: template.Must(template.New("rejection").Parse(jobHeader + `
    <p>Thank you for applying for the position of <strong>{{.JobTitle}}</strong> at <strong>{{.CompanyName}}</strong>.</p>
    <p>After careful consideration, we regret to inform you that your application has not been selected for further processing.</p>
    <p>We appreciate your interest in our organization and encourage you to apply for future opportunities that match your skills and experience.</p>
` + jobFooter)),
	}

	welcomeTemplate = &mailTemplate{
		subject: "Welcome to JobHunt",
		body: template.Must(template.New("welcome").Parse(`<html>
<body>
    {{- if .LogoURL}}
    <div style="text-align: center;">
        <img src="{{.LogoURL}}" alt="JobHunt Logo" style="width: 100px; height: auto;">
    </div>
    {{- end}}
    <p>{{.Username}},</p>
    <p>Your JobHunt account has been created successfully.</p>
    <p>Explore various job opportunities at our portal by logging in.</p>
    <p>Best Regards,</p>
    <p>JobHunt</p>
</body>
</html>
`)),
	}
)
