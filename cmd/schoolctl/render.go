package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evaaz/schoolctl/client"
	"github.com/evaaz/schoolctl/locale"
)

// User-facing messages, verbatim from the dashboard this tool replaces.
const (
	msgInvalidCredentials = "بيانات الاعتماد غير صحيحة"
	msgNotLoggedIn        = "يرجى تسجيل الدخول"
	msgLoadFailed         = "حدث خطأ أثناء تحميل المدارس"
	msgNeedCriterion      = "يرجى إدخال معيار بحث واحد على الأقل"
	msgNoResults          = "لا يوجد نتائج مطابقة لمعايير البحث"
	msgNoSchools          = "لم يتم العثور على مدارس مسجلة"
)

func countToken(n int) string {
	return locale.FormatCount(n)
}

func renderHeader(cmd *cobra.Command, title string, count int) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s — %s مدرسة\n\n", title, countToken(count))
}

// renderSchools prints one card per school, mirroring the dashboard's
// card layout as plain text.
func renderSchools(cmd *cobra.Command, schools []client.School) {
	w := cmd.OutOrStdout()
	for _, s := range schools {
		fmt.Fprintf(w, "%s — %s\n", s.SchoolName, s.City)
		fmt.Fprintf(w, "  مدير العقد: %s\n", s.ContractManagerName)
		fmt.Fprintf(w, "  الهاتف: %s\n", s.PhoneNumber)
		fmt.Fprintf(w, "  البريد الإلكتروني: %s\n", s.Email)
		fmt.Fprintf(w, "  روضة: %s | ابتدائي (1-4): %s | ابتدائي (5-6): %s | متوسط (1-2): %s | متوسط (3): %s | ثانوي: %s\n",
			countToken(s.KindergartenStudents),
			countToken(s.Primary1to4Students),
			countToken(s.Primary5to6Students),
			countToken(s.Intermediate1to2Students),
			countToken(s.Intermediate3Students),
			countToken(s.SecondaryStudents))
		fmt.Fprintf(w, "  الإجمالي: %s طالب\n", countToken(s.TotalStudents()))
		fmt.Fprintf(w, "  معمل حاسب آلي: %s | خدمة الإنترنت: %s\n",
			locale.YesNo(s.HasComputerLab), locale.YesNo(s.HasInternet))
		fmt.Fprintf(w, "  السجل التجاري: %s | هوية المدير: %s\n",
			s.CommercialRegistration.URL, s.ContractManagerID.URL)
		fmt.Fprintf(w, "  أنشئ: %s | محدث: %s\n\n",
			locale.FormatDate(s.CreatedAt), locale.FormatDate(s.UpdatedAt))
	}
}
