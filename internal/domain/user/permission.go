package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceClock   Permission = "attendance.clock"
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewAll Permission = "attendance.view_all"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Organisation structure
	PermissionMasterView   Permission = "master.view"
	PermissionMasterManage Permission = "master.manage"

	// HR Management
	PermissionHRView   Permission = "hr.view"
	PermissionHRManage Permission = "hr.manage"

	// Payroll
	PermissionSalaryViewOwn  Permission = "salary.view_own"
	PermissionSalaryGenerate Permission = "salary.generate"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewAll,
		PermissionAttendanceMark,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionMasterView,
		PermissionMasterManage,
		PermissionHRView,
		PermissionHRManage,
		PermissionSalaryGenerate,
	},
	RoleHR: {
		PermissionViewOwnProfile,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewAll,
		PermissionAttendanceMark,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionMasterView,
		PermissionMasterManage,
		PermissionSalaryGenerate,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceClock,
		PermissionMasterView,
		PermissionSalaryViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
