package services

// User-facing messages. Callers print them verbatim.
const (
	msgNetworkError = "Network error occurred. Please check your connection and try again."

	msgLoginSuccess     = "Login successful"
	msgLoginFailed      = "Login failed. Please check your credentials."
	msgLoginOTPSent     = "OTP sent to your email. Please verify to continue."
	msgLoginUnconfirmed = "Login could not be confirmed. Please try again."
	msgEmailUnverified  = "Please verify your email to continue."

	msgSignupFailed           = "Signup failed. Please try again."
	msgSignupUnverified       = "Unable to verify signup status. Please try again."
	msgSignupUserExists       = "Username Or E-mail Already Exists"
	msgSignupLoginInterrupted = "Signup successful but automatic login failed. Please try logging in manually."

	msgUserDataAvailable = "Username and email are available"
	msgUserDataTaken     = "Username or email already exists"
	msgUserDataError     = "Error checking user data"

	msgOTPVerified     = "OTP verified successfully."
	msgOTPVerifyFailed = "OTP verification failed. Please try again."
	msgOTPResent       = "OTP sent successfully!"
	msgOTPResendFailed = "Failed to resend OTP. Please try again."
)
