package mail

// Reset-code email. The code is rendered inline; the template warns about the
// 10-minute expiry.
const resetCodeTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Password Reset Code</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
        .header { text-align: center; padding: 20px 0; background-color: #22c55e; color: white; border-radius: 8px 8px 0 0; }
        .content { padding: 20px; text-align: center; }
        .otp-code { font-size: 32px; font-weight: bold; color: #22c55e; background-color: #f0fdf4; padding: 15px; border-radius: 5px; margin: 20px 0; letter-spacing: 5px; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Crystal Loom</h1>
            <p>Password Reset</p>
        </div>
        <div class="content">
            <p>We received a request to reset the password for your Crystal Loom account.</p>
            <p>Your one-time code is:</p>
            <div class="otp-code">{{.Code}}</div>
            <p>This code expires in <strong>10 minutes</strong>.</p>
            <p>If you didn't request a password reset, ignore this email. Do not share this code with anyone.</p>
        </div>
        <div class="footer">
            <p>Questions? Contact us at {{.SupportEmail}}</p>
        </div>
    </div>
</body>
</html>
`

// Order-confirmation email. Items render as table rows of
// name / unit price / quantity / line total.
const orderConfirmationTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Order Confirmation</title>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
        .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 20px; border-radius: 8px; }
        .header { text-align: center; padding: 20px 0; background-color: #22c55e; color: white; border-radius: 8px 8px 0 0; }
        .content { padding: 20px; }
        table { width: 100%; border-collapse: collapse; margin: 20px 0; }
        th, td { padding: 8px; border-bottom: 1px solid #eee; text-align: left; }
        .total { font-size: 18px; font-weight: bold; text-align: right; }
        .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; border-top: 1px solid #eee; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Crystal Loom</h1>
        </div>
        <div class="content">
            <p>Hello {{.Name}},</p>
            <p>Order <strong>{{.OrderID}}</strong> placed on {{.OrderDate}} is confirmed.</p>
            <p>
                Shipping to:<br>
                {{.Address}}, {{.City}}, {{.State}} - {{.Pincode}}<br>
                Phone: {{.Phone}}
            </p>
            <table>
                <tr><th>Item</th><th>Price</th><th>Qty</th><th>Subtotal</th></tr>
                {{range .Items}}<tr><td>{{.Name}}</td><td>&#8377;{{.Price}}</td><td>{{.Quantity}}</td><td>&#8377;{{.Subtotal}}</td></tr>
                {{end}}
            </table>
            <p class="total">Total: &#8377;{{.Total}}</p>
        </div>
        <div class="footer">
            <p>Questions? Contact us at {{.SupportEmail}}</p>
        </div>
    </div>
</body>
</html>
`
