package server

var (
	SiteTitle = "Django Portfolio Guide"

	IntroHeading = "Build an Impactful Django Portfolio"
	IntroContent = `The demand for skilled Django developers is rising, but so is the
	competition. A strong portfolio is no longer optional. It's your primary tool to
	showcase your expertise, solve real-world problems, and secure your next role.
	This interactive guide translates strategic advice into an explorable tool to
	help you build your best portfolio.`

	AboutHeading = "About This Guide"
	AboutContent = `A strategic toolkit for building a job-ready Django portfolio with
	real-world projects.`

	SkillsHeading = "Essential Skills Explorer"
	SkillsContent = `A truly effective portfolio demonstrates a blend of core concepts and
	advanced, real-world expertise. Explore the key skills recruiters look for.`

	ProjectsHeading = "Project Pathfinder"
	ProjectsContent = `Select projects by level to sharpen your skills. Click a card for
	full details.`

	TimelineHeading = "Project Timelines at a Glance"
	TimelineContent = `This chart compares the estimated time required for each project
	by complexity level.`

	AdvancedHeading = "Deep Dive: Advanced Techniques"
	AdvancedContent = `Stand out by incorporating advanced Django capabilities. Explore
	techniques that show you're ready for real-world production systems.`

	ShowcaseHeading = "Showcasing Your Work Effectively"
	ShowcaseContent = `Building great projects is half the battle; presenting them
	effectively is what gets you noticed. Follow these practices to make sure your
	hard work has the maximum impact.`

	FooterContent = "An Interactive Guide to Building Your Django Portfolio."

	RepositoryURL = "https://github.com/banadawit/django-portfolio-guide"
)

// Feature is an entry in the about section.
type Feature struct {
	Title       string
	Description string
}

var AboutFeatures = []Feature{
	{Title: "Interactive Learning", Description: "Explore projects with live filters and visualizations"},
	{Title: "Curated Pathways", Description: "Projects organized by complexity and skills required"},
	{Title: "Progress Tracking", Description: "Visual timeline to plan your portfolio growth"},
}

var HowToSteps = []string{
	"Filter projects by your current skill level",
	"Review required skills and estimated timelines",
	"Track your progress through the visual roadmap",
}

// Tip is a showcase card.
type Tip struct {
	Icon        string
	Title       string
	Description string
}

var ShowcaseTips = []Tip{
	{
		Icon:  "🚀",
		Title: "Leverage GitHub",
		Description: `Create clean repositories with detailed READMEs. Pin your best projects
		to your profile. Well-commented, professional code demonstrates your attention to detail.`,
	},
	{
		Icon:  "📊",
		Title: "Highlight Impact",
		Description: `Don't just list features; explain the problem you solved. Quantify your
		impact. Show you think about business value, not just code.`,
	},
	{
		Icon:  "🌐",
		Title: "Provide Live Demos",
		Description: `Deploy your projects and link to them. A live demo is the strongest proof
		of your skills and your ability to deliver a finished product.`,
	},
}

// NavLink is a header navigation entry pointing at a page section.
type NavLink struct {
	Section string
	Label   string
}

var NavLinks = []NavLink{
	{Section: "about-project", Label: "About"},
	{Section: "skills", Label: "Skills"},
	{Section: "projects", Label: "Projects"},
	{Section: "advanced", Label: "Techniques"},
	{Section: "showcase", Label: "Showcase"},
}

// PageSections lists every tracked section in document order.
var PageSections = []string{"intro", "about-project", "skills", "projects", "timeline", "advanced", "showcase"}

var siteContent = map[string]string{
	"siteTitle":       SiteTitle,
	"introHeading":    IntroHeading,
	"introContent":    IntroContent,
	"aboutHeading":    AboutHeading,
	"aboutContent":    AboutContent,
	"skillsHeading":   SkillsHeading,
	"skillsContent":   SkillsContent,
	"projectsHeading": ProjectsHeading,
	"projectsContent": ProjectsContent,
	"timelineHeading": TimelineHeading,
	"timelineContent": TimelineContent,
	"advancedHeading": AdvancedHeading,
	"advancedContent": AdvancedContent,
	"showcaseHeading": ShowcaseHeading,
	"showcaseContent": ShowcaseContent,
	"footerContent":   FooterContent,
	"repositoryURL":   RepositoryURL,
}
